package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

// FileSource reads the catalog from a local CSV file.
type FileSource struct {
	path string
}

// NewFileSource constructs a local file source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Describe names the source for logs and metrics.
func (s *FileSource) Describe() string {
	return "file:" + s.path
}

// Load parses the file. A missing or empty file is reported as unavailable.
func (s *FileSource) Load(ctx context.Context) (*models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hint := fmt.Sprintf("local %s not found or empty; fetch the catalog first or run without --local", s.path)

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, hint)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "cannot access "+s.path)
	}
	if info.IsDir() || info.Size() == 0 {
		return nil, appErrors.Clone(appErrors.ErrSourceUnavailable, hint)
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "open "+s.path)
	}
	defer file.Close() //nolint:errcheck

	table, err := ParseCourseCSV(file)
	if errors.Is(err, errEmptySource) {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, hint)
	}
	return table, err
}
