package service

import (
	"strings"

	"github.com/noah-isme/course-viewer/internal/dto"
	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

// BuildFilterState turns a stateless query into a FilterState.
func BuildFilterState(q dto.CourseQuery) (models.FilterState, error) {
	mode, err := models.ParseDayMode(q.Mode)
	if err != nil {
		return models.FilterState{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	days, err := models.ParseDaySelection(SplitList(q.Days))
	if err != nil {
		return models.FilterState{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return models.FilterState{
		Query:   q.Query,
		Mode:    mode,
		Columns: SplitList(q.Columns),
		Days:    days,
	}, nil
}

// SplitList flattens repeated and comma separated values, dropping blanks.
func SplitList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
