package handler

import (
	"maps"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/lib/utils"
	"github.com/deppfellow/webkit/internal/server"
	"github.com/deppfellow/webkit/internal/validation"
)

type ImageHandler struct {
	Handler
}

func NewImageHandler(s *server.Server) *ImageHandler {
	return &ImageHandler{Handler: NewHandler(s)}
}

// ImageSizeRequest describes an image by its transformation type and either
// its aspect ratio (fill) or its stored width/height.
type ImageSizeRequest struct {
	Type        string `query:"type"`
	AspectRatio string `query:"aspect_ratio"`
	Width       string `query:"width"`
	Height      string `query:"height"`
	Dimension   string `query:"dimension" validate:"required,oneof=width height"`
}

func (r *ImageSizeRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type ImageSizeResponse struct {
	Size int `json:"size"`
}

type PlaceholderRequest struct {
	Width  int `query:"width" validate:"omitempty,min=1,max=4000"`
	Height int `query:"height" validate:"omitempty,min=1,max=4000"`
}

func (r *PlaceholderRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type PlaceholderResponse struct {
	DataURL string `json:"data_url"`
}

type AspectRatiosRequest struct{}

func (r *AspectRatiosRequest) Validate() error {
	return nil
}

type AspectRatiosResponse struct {
	AspectRatios []utils.AspectRatio `json:"aspect_ratios"`
}

// Size handles GET /api/v1/images/size.
func (h *ImageHandler) Size() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *ImageSizeRequest) (ImageSizeResponse, error) {
		image := map[string]any{
			"aspectRatio": req.AspectRatio,
			"width":       req.Width,
			"height":      req.Height,
		}
		return ImageSizeResponse{
			Size: utils.ImageSize(req.Type, image, utils.Dimension(req.Dimension)),
		}, nil
	}, http.StatusOK, newOf[ImageSizeRequest]())
}

// Placeholder handles GET /api/v1/images/placeholder. Missing sides default
// to utils.DefaultImageSize.
func (h *ImageHandler) Placeholder() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *PlaceholderRequest) (PlaceholderResponse, error) {
		width, height := req.Width, req.Height
		if width == 0 {
			width = utils.DefaultImageSize
		}
		if height == 0 {
			height = utils.DefaultImageSize
		}
		return PlaceholderResponse{DataURL: utils.PlaceholderDataURL(width, height)}, nil
	}, http.StatusOK, newOf[PlaceholderRequest]())
}

// AspectRatios handles GET /api/v1/images/aspect-ratios, ordered by ratio.
func (h *ImageHandler) AspectRatios() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *AspectRatiosRequest) (AspectRatiosResponse, error) {
		keys := slices.Sorted(maps.Keys(utils.AspectRatioOptions))

		ratios := make([]utils.AspectRatio, 0, len(keys))
		for _, k := range keys {
			ratios = append(ratios, utils.AspectRatioOptions[k])
		}
		return AspectRatiosResponse{AspectRatios: ratios}, nil
	}, http.StatusOK, newOf[AspectRatiosRequest]())
}
