package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/lib/merge"
	"github.com/deppfellow/webkit/internal/server"
	"github.com/deppfellow/webkit/internal/validation"
)

type MergeHandler struct {
	Handler
}

func NewMergeHandler(s *server.Server) *MergeHandler {
	return &MergeHandler{Handler: NewHandler(s)}
}

// MergeRequest holds two JSON objects; values in Base win. A missing object
// counts as empty.
type MergeRequest struct {
	Base    map[string]any `json:"base"`
	Overlay map[string]any `json:"overlay"`
}

func (r *MergeRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type MergeResponse struct {
	Result map[string]any `json:"result"`
}

// Merge handles POST /api/v1/merge.
func (h *MergeHandler) Merge() echo.HandlerFunc {
	return Handle(h.Handler, h.merge, http.StatusOK, newOf[MergeRequest]())
}

func (h *MergeHandler) merge(c echo.Context, req *MergeRequest) (MergeResponse, error) {
	return MergeResponse{Result: merge.Deep(req.Base, req.Overlay)}, nil
}
