package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-viewer/pkg/config"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

func TestOpenSourceSelectsByMode(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "local", cfg: config.Config{Local: true, Source: config.SourceConfig{LocalPath: "course.csv", RemoteURL: "https://x"}}, want: "file:course.csv"},
		{name: "https", cfg: config.Config{Source: config.SourceConfig{RemoteURL: "https://example.com/course.csv"}}, want: "remote"},
		{name: "file url", cfg: config.Config{Source: config.SourceConfig{RemoteURL: "file:///srv/course.csv"}}, want: "file:/srv/course.csv"},
		{name: "bare path", cfg: config.Config{Source: config.SourceConfig{RemoteURL: "data/course.csv"}}, want: "file:data/course.csv"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			src, closer, err := OpenSource(context.Background(), &cfg)
			require.NoError(t, err)
			defer closer.Close() //nolint:errcheck
			assert.Equal(t, tc.want, src.Describe())
		})
	}
}

func TestOpenSourceRequiresRemoteURL(t *testing.T) {
	_, _, err := OpenSource(context.Background(), &config.Config{})
	assert.True(t, errors.Is(err, appErrors.ErrSourceUnavailable))

	_, _, err = OpenSource(context.Background(), &config.Config{Source: config.SourceConfig{RemoteURL: "ftp://example.com/c.csv"}})
	assert.True(t, errors.Is(err, appErrors.ErrSourceUnavailable))
}
