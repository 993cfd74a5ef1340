package repository

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/pkg/config"
	"github.com/noah-isme/course-viewer/pkg/database"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

// CourseSource loads a raw catalog.
type CourseSource interface {
	Load(ctx context.Context) (*models.RawTable, error)
	Describe() string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSource selects the catalog source for the configured mode: the local
// file in local mode, otherwise the secret DB_URL, which may name an HTTP(S)
// resource, a PostgreSQL database or a file path.
func OpenSource(ctx context.Context, cfg *config.Config) (CourseSource, io.Closer, error) {
	if cfg.Local {
		return NewFileSource(cfg.Source.LocalPath), nopCloser{}, nil
	}

	raw := cfg.Source.RemoteURL
	if raw == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrSourceUnavailable, "DB_URL is not configured; set it or run with --local")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "DB_URL is not a valid url")
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return NewHTTPSource(raw, cfg.Source.FetchTimeout), nopCloser{}, nil
	case "postgres", "postgresql":
		db, err := database.NewPostgres(ctx, raw, cfg.Database)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, "connect catalog database")
		}
		return NewPostgresSource(db, defaultCourseTable), db, nil
	case "file":
		return NewFileSource(parsed.Path), nopCloser{}, nil
	case "":
		return NewFileSource(raw), nopCloser{}, nil
	default:
		return nil, nil, appErrors.Clone(appErrors.ErrSourceUnavailable, "unsupported DB_URL scheme "+parsed.Scheme)
	}
}
