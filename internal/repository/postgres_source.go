package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

const defaultCourseTable = "courses"

// PostgresSource reads the catalog from a table whose first column plays the
// role of the CSV row index.
type PostgresSource struct {
	db    *sqlx.DB
	table string
}

// NewPostgresSource constructs a database-backed source.
func NewPostgresSource(db *sqlx.DB, table string) *PostgresSource {
	if table == "" {
		table = defaultCourseTable
	}
	return &PostgresSource{db: db, table: table}
}

// Describe names the source for logs and metrics.
func (s *PostgresSource) Describe() string {
	return "postgres:" + s.table
}

// Load selects every row ordered by the index column.
func (s *PostgresSource) Load(ctx context.Context) (*models.RawTable, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY 1", quoteIdent(s.table))
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "query catalog table")
	}
	defer rows.Close() //nolint:errcheck

	columns, err := rows.Columns()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "read catalog columns")
	}
	if len(columns) < 2 {
		return nil, appErrors.Clone(appErrors.ErrMalformedSource, "catalog table has no data columns")
	}

	table := &models.RawTable{Header: trimAll(columns[1:])}
	if err := requireColumns(table.Header); err != nil {
		return nil, err
	}

	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "scan catalog row")
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = stringify(v)
		}
		table.Index = append(table.Index, record[0])
		table.Rows = append(table.Rows, record[1:])
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "iterate catalog rows")
	}
	return table, nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
