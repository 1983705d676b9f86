// Package handler is the HTTP entry point after the router: it binds and
// validates requests, calls the lib or service layer, and shapes responses.
package handler

import (
	"github.com/deppfellow/webkit/internal/server"
	"github.com/deppfellow/webkit/internal/service"
)

// Handlers groups every HTTP handler.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Query      *QueryHandler
	Merge      *MergeHandler
	Image      *ImageHandler
	ClassNames *ClassNamesHandler
	Download   *DownloadHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Query:      NewQueryHandler(s),
		Merge:      NewMergeHandler(s),
		Image:      NewImageHandler(s),
		ClassNames: NewClassNamesHandler(s),
		Download:   NewDownloadHandler(s, services.Download),
	}
}
