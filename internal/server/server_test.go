package server

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/webkit/internal/config"
)

func TestNewWithoutRedis(t *testing.T) {
	logger := zerolog.Nop()
	s, err := New(config.DefaultConfig(), &logger, nil)
	require.NoError(t, err)

	assert.Nil(t, s.Redis)
	assert.NotNil(t, s.DB)

	_, cached := s.DB.Cached()
	assert.False(t, cached)

	assert.Error(t, s.Start())
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestMetricsRegistered(t *testing.T) {
	logger := zerolog.Nop()
	s, err := New(config.DefaultConfig(), &logger, nil)
	require.NoError(t, err)

	s.Metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(s.Metrics.DownloadsTotal.WithLabelValues("ok")))

	families, err := s.Registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "webkit_download_requests_total")
}
