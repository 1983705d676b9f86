package handler

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/server"
)

//go:embed static
var staticFiles embed.FS

// OpenAPIHandler serves the API docs UI and the files it loads.
type OpenAPIHandler struct {
	Handler
	static fs.FS
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}

	return &OpenAPIHandler{
		Handler: NewHandler(s),
		static:  sub,
	}
}

// ServeOpenAPIUI serves the docs page. It is never cached so spec changes
// show up on reload.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := fs.ReadFile(h.static, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}

// Static serves /static/*, including openapi.json.
func (h *OpenAPIHandler) Static() echo.HandlerFunc {
	return echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(h.static))))
}
