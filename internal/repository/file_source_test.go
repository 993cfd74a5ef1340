package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	table, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "course.csv"))
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileSourceEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewFileSource(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "not found or empty")
}

func TestFileSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileSource("course.csv").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
