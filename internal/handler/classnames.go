package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/lib/utils"
	"github.com/deppfellow/webkit/internal/server"
	"github.com/deppfellow/webkit/internal/validation"
)

type ClassNamesHandler struct {
	Handler
}

func NewClassNamesHandler(s *server.Server) *ClassNamesHandler {
	return &ClassNamesHandler{Handler: NewHandler(s)}
}

// ClassNamesRequest takes strings, nested arrays and {"class": bool} objects.
type ClassNamesRequest struct {
	Classes []any `json:"classes" validate:"required"`
}

func (r *ClassNamesRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type ClassNamesResponse struct {
	ClassName string `json:"class_name"`
}

// Merge handles POST /api/v1/classnames.
func (h *ClassNamesHandler) Merge() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *ClassNamesRequest) (ClassNamesResponse, error) {
		return ClassNamesResponse{ClassName: utils.ClassNames(req.Classes...)}, nil
	}, http.StatusOK, newOf[ClassNamesRequest]())
}
