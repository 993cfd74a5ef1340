package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
	"github.com/noah-isme/course-viewer/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders filtered catalog views as downloads.
type ExportService struct {
	catalog   *CatalogService
	renderers map[string]datasetRenderer
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with the CSV, XLSX and PDF renderers.
func NewExportService(catalog *CatalogService, pdfFontPath string, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		catalog: catalog,
		renderers: map[string]datasetRenderer{
			ExportFormatCSV:  export.NewCSVExporter(),
			ExportFormatXLSX: export.NewXLSXExporter(),
			ExportFormatPDF:  export.NewPDFExporter(pdfFontPath),
		},
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Export filters the catalog with state and renders it in format.
func (s *ExportService) Export(ctx context.Context, state models.FilterState, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	view, _, err := s.catalog.Query(ctx, state)
	if err != nil {
		return nil, err
	}

	payload, err := renderer.Render(export.Dataset{Title: "Courses", Headers: view.Columns, Rows: view.Rows})
	if err != nil {
		s.logger.Error("export render failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.metrics.RecordExport(format)

	return &ExportResult{
		Filename:    fmt.Sprintf("courses_%s.%s", s.now().UTC().Format("20060102_150405"), format),
		ContentType: contentType(format),
		Body:        payload,
		Rows:        view.Count,
	}, nil
}

func contentType(format string) string {
	switch format {
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportFormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}
