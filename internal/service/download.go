package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/webkit/internal/errs"
	"github.com/deppfellow/webkit/internal/lib/download"
	"github.com/deppfellow/webkit/internal/lib/utils"
	"github.com/deppfellow/webkit/internal/server"
)

// DownloadService fetches a remote image on behalf of the client and maps
// failures onto HTTP errors.
type DownloadService struct {
	server *server.Server
	client *download.Client
}

func NewDownloadService(s *server.Server) *DownloadService {
	return &DownloadService{
		server: s,
		client: download.NewClient(s.Config.Download, s.Logger),
	}
}

// WithClient replaces the download client.
func (d *DownloadService) WithClient(client *download.Client) *DownloadService {
	d.client = client
	return d
}

// Download fetches url and names the file after filename.
//
//   - missing url: 400 URL_REQUIRED
//   - private address or host outside download.allowed_hosts: 400 HOST_NOT_ALLOWED
//   - body over download.max_bytes: 400 FILE_TOO_LARGE
//   - non-2xx from the host: 502
//   - anything else: 500, logged through utils.HandleError
func (d *DownloadService) Download(ctx context.Context, logger *zerolog.Logger, url, filename string) (*download.File, error) {
	file, err := d.client.Fetch(ctx, url, filename)
	if err != nil {
		return nil, d.fail(logger, err)
	}

	d.server.Metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	d.server.Metrics.DownloadBytes.Observe(float64(len(file.Data)))

	return file, nil
}

func (d *DownloadService) fail(logger *zerolog.Logger, err error) error {
	var upstream *download.UpstreamError

	switch {
	case errors.Is(err, download.ErrMissingURL):
		d.server.Metrics.DownloadsTotal.WithLabelValues("invalid").Inc()
		code := "URL_REQUIRED"
		return errs.NewBadRequestError("Resource URL not provided", true, &code, nil, nil)

	case errors.Is(err, download.ErrForbiddenHost):
		d.server.Metrics.DownloadsTotal.WithLabelValues("invalid").Inc()
		logger.Warn().Err(err).Msg("download target refused")
		code := "HOST_NOT_ALLOWED"
		return errs.NewBadRequestError("Resource host is not allowed", true, &code, nil, nil)

	case errors.Is(err, download.ErrTooLarge):
		d.server.Metrics.DownloadsTotal.WithLabelValues("invalid").Inc()
		code := "FILE_TOO_LARGE"
		return errs.NewBadRequestError(
			fmt.Sprintf("Resource exceeds the %d byte download limit", d.server.Config.Download.MaxBytes),
			true, &code, nil, nil,
		)

	case errors.As(err, &upstream):
		d.server.Metrics.DownloadsTotal.WithLabelValues("upstream_error").Inc()
		logger.Warn().Err(err).Int("upstream_status", upstream.Status).Msg("download rejected by upstream")
		return errs.NewBadGatewayError(fmt.Sprintf("Resource host answered with status %d", upstream.Status))

	default:
		d.server.Metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return utils.HandleError(logger, err)
	}
}
