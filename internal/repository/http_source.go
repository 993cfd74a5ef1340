package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

// HTTPSource downloads the catalog CSV from a remote URL. There is no retry.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource constructs a remote source with an explicit fetch timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{url: url, client: &http.Client{Timeout: timeout}}
}

// Describe names the source without leaking the secret URL.
func (s *HTTPSource) Describe() string {
	return "remote"
}

// Load fetches and parses the remote catalog.
func (s *HTTPSource) Load(ctx context.Context) (*models.RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "invalid catalog url")
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "fetch catalog")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, appErrors.Clone(appErrors.ErrSourceUnavailable, fmt.Sprintf("fetch catalog: unexpected status %d", resp.StatusCode))
	}

	table, err := ParseCourseCSV(resp.Body)
	if errors.Is(err, errEmptySource) {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "remote catalog is empty")
	}
	return table, err
}
