package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/course-viewer/internal/dto"
	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/internal/service"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
	"github.com/noah-isme/course-viewer/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, state models.FilterState, format string) (*service.ExportResult, error)
}

// ExportHandler serves downloads of filtered views.
type ExportHandler struct {
	exports   exportService
	validator *validator.Validate
}

// NewExportHandler builds a new handler.
func NewExportHandler(exports exportService, validate *validator.Validate) *ExportHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &ExportHandler{exports: exports, validator: validate}
}

// Download godoc
// @Summary Download the filtered catalog
// @Tags Courses
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default), xlsx or pdf"
// @Param q query string false "Regular expression matched against Title, Instructor and Id"
// @Param days query []string false "Weekday glyphs"
// @Param mode query string false "Subset or AllMatched"
// @Param columns query []string false "Visible columns"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /courses/export [get]
func (h *ExportHandler) Download(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	if err := h.validator.Struct(q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format"))
		return
	}
	state, err := service.BuildFilterState(q.CourseQuery)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.exports.Export(c.Request.Context(), state, q.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("X-Result-Count", strconv.Itoa(result.Rows))
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
