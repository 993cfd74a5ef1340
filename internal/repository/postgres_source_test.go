package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

func newSourceMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPostgresSourceLoad(t *testing.T) {
	db, mock, cleanup := newSourceMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"idx", "Id", "Title", "Instructor", "Classroom", "Time"}).
		AddRow(int64(0), "CSIE1212", "Algorithms", "Hsu", "新101", "一7,8,9").
		AddRow(int64(1), []byte("MATH4006"), "Calculus", nil, "天103", "二3,4")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "courses" ORDER BY 1`)).WillReturnRows(rows)

	table, err := NewPostgresSource(db, "").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Id", "Title", "Instructor", "Classroom", "Time"}, table.Header)
	assert.Equal(t, []string{"0", "1"}, table.Index)
	assert.Equal(t, []string{"MATH4006", "Calculus", "", "天103", "二3,4"}, table.Rows[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSourceQueryError(t *testing.T) {
	db, mock, cleanup := newSourceMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "catalog"."courses" ORDER BY 1`)).WillReturnError(errors.New("relation does not exist"))

	_, err := NewPostgresSource(db, "catalog.courses").Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSourceUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSourceMissingColumns(t *testing.T) {
	db, mock, cleanup := newSourceMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"idx", "Id"}).AddRow(0, "A"))

	_, err := NewPostgresSource(db, "").Load(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrMalformedSource))
}
