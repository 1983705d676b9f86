package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/lib/query"
	"github.com/deppfellow/webkit/internal/server"
	"github.com/deppfellow/webkit/internal/validation"
)

// QueryHandler exposes the query-string helpers.
type QueryHandler struct {
	Handler
}

func NewQueryHandler(s *server.Server) *QueryHandler {
	return &QueryHandler{Handler: NewHandler(s)}
}

type SetParamRequest struct {
	Query string `json:"query"`
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

func (r *SetParamRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type RemoveParamsRequest struct {
	Query string   `json:"query"`
	Keys  []string `json:"keys" validate:"dive,required"`
}

func (r *RemoveParamsRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type DecodeQueryRequest struct {
	Query string `json:"query"`
}

func (r *DecodeQueryRequest) Validate() error {
	return nil
}

// QueryResponse carries a query string ready to append to a path.
type QueryResponse struct {
	Query string `json:"query"`
}

type DecodeQueryResponse struct {
	Params *query.Values `json:"params"`
}

// SetParam handles POST /api/v1/query/set.
func (h *QueryHandler) SetParam() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *SetParamRequest) (QueryResponse, error) {
		return QueryResponse{Query: query.SetParam(req.Query, req.Key, req.Value)}, nil
	}, http.StatusOK, newOf[SetParamRequest]())
}

// RemoveParams handles POST /api/v1/query/remove.
func (h *QueryHandler) RemoveParams() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *RemoveParamsRequest) (QueryResponse, error) {
		return QueryResponse{Query: query.RemoveParams(req.Query, req.Keys)}, nil
	}, http.StatusOK, newOf[RemoveParamsRequest]())
}

// Decode handles POST /api/v1/query/decode.
func (h *QueryHandler) Decode() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *DecodeQueryRequest) (DecodeQueryResponse, error) {
		return DecodeQueryResponse{Params: query.Decode(req.Query)}, nil
	}, http.StatusOK, newOf[DecodeQueryRequest]())
}
