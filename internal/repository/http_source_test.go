package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

func TestHTTPSourceLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	table, err := NewHTTPSource(srv.URL, time.Second).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestHTTPSourceBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPSourceTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, 20*time.Millisecond).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSourceUnavailable))
}

func TestHTTPSourceEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).Load(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrSourceUnavailable))
}
