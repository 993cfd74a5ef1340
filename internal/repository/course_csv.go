package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

// errEmptySource marks a source with no header row.
var errEmptySource = errors.New("catalog source is empty")

// ParseCourseCSV reads a catalog whose first column is a row index. Short rows
// are padded and long rows truncated to the header width.
func ParseCourseCSV(r io.Reader) (*models.RawTable, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptySource
		}
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedSource.Code, appErrors.ErrMalformedSource.Status, "read catalog header")
	}
	if len(header) < 2 {
		return nil, appErrors.Clone(appErrors.ErrMalformedSource, "catalog header has no data columns")
	}

	table := &models.RawTable{Header: trimAll(header[1:])}
	if err := requireColumns(table.Header); err != nil {
		return nil, err
	}

	width := len(header)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrMalformedSource.Code, appErrors.ErrMalformedSource.Status, fmt.Sprintf("read catalog line %d", line))
		}
		record = fitWidth(record, width)
		table.Index = append(table.Index, record[0])
		table.Rows = append(table.Rows, record[1:])
	}
	return table, nil
}

func requireColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range models.RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return appErrors.Clone(appErrors.ErrMalformedSource, "catalog is missing columns: "+strings.Join(missing, ", "))
	}
	return nil
}

func fitWidth(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	out := make([]string, width)
	copy(out, record)
	return out
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
