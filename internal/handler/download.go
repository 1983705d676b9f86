package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/lib/download"
	"github.com/deppfellow/webkit/internal/middleware"
	"github.com/deppfellow/webkit/internal/server"
	"github.com/deppfellow/webkit/internal/service"
	"github.com/deppfellow/webkit/internal/validation"
)

type DownloadHandler struct {
	Handler
	downloads *service.DownloadService
}

func NewDownloadHandler(s *server.Server, downloads *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{
		Handler:   NewHandler(s),
		downloads: downloads,
	}
}

// DownloadRequest names the image to fetch. An empty URL is answered with
// URL_REQUIRED; a non-empty one must be an http(s) URL.
type DownloadRequest struct {
	URL      string `json:"url" validate:"omitempty,http_url"`
	Filename string `json:"filename" validate:"max=200"`
}

func (r *DownloadRequest) Validate() error {
	return validation.ValidateStruct(r)
}

// Download handles POST /api/v1/download and answers with the file.
func (h *DownloadHandler) Download() echo.HandlerFunc {
	return HandleFile(h.Handler, func(c echo.Context, req *DownloadRequest) (*download.File, error) {
		return h.downloads.Download(c.Request().Context(), middleware.GetLogger(c), req.URL, req.Filename)
	}, http.StatusOK, newOf[DownloadRequest]())
}
