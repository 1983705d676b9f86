package utils

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// DefaultImageSize is used whenever a dimension cannot be resolved.
const DefaultImageSize = 1000

// Dimension names the side of an image being resolved.
type Dimension string

const (
	DimensionWidth  Dimension = "width"
	DimensionHeight Dimension = "height"
)

// TransformationFill is the transformation type whose output size comes
// from the selected aspect ratio rather than the source image.
const TransformationFill = "fill"

// AspectRatio describes one output format offered by generative fill.
type AspectRatio struct {
	AspectRatio string `json:"aspect_ratio"`
	Label       string `json:"label"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// AspectRatioOptions is keyed by the ratio string ("3:4").
var AspectRatioOptions = map[string]AspectRatio{
	"1:1":  {AspectRatio: "1:1", Label: "Square (1:1)", Width: 1000, Height: 1000},
	"3:4":  {AspectRatio: "3:4", Label: "Standard Portrait (3:4)", Width: 1000, Height: 1334},
	"9:16": {AspectRatio: "9:16", Label: "Phone Portrait (9:16)", Width: 1000, Height: 1778},
}

// ImageSize resolves the rendered width or height of an image.
//
// For fill transformations the size comes from AspectRatioOptions, looked up
// by image["aspectRatio"]. For anything else image[dimension] is used, as a
// number or numeric string. Missing, zero, or unparsable sizes fall back to
// DefaultImageSize.
func ImageSize(kind string, image map[string]any, dimension Dimension) int {
	if kind == TransformationFill {
		opt, ok := AspectRatioOptions[cast.ToString(image["aspectRatio"])]
		if !ok {
			return DefaultImageSize
		}
		size := opt.Width
		if dimension == DimensionHeight {
			size = opt.Height
		}
		return orDefault(size)
	}

	return orDefault(toSize(image[string(dimension)]))
}

// toSize reads strings as base 10; cast would treat "010" as octal.
func toSize(v any) int {
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		return n
	}
	return cast.ToInt(v)
}

func orDefault(size int) int {
	if size <= 0 {
		return DefaultImageSize
	}
	return size
}

// Shimmer renders an animated SVG used as a blur placeholder while the
// real image loads.
func Shimmer(w, h int) string {
	return fmt.Sprintf(`<svg width="%[1]d" height="%[2]d" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
  <defs>
    <linearGradient id="g">
      <stop stop-color="#7986AC" offset="20%%" />
      <stop stop-color="#68769e" offset="50%%" />
      <stop stop-color="#7986AC" offset="70%%" />
    </linearGradient>
  </defs>
  <rect width="%[1]d" height="%[2]d" fill="#7986AC" />
  <rect id="r" width="%[1]d" height="%[2]d" fill="url(#g)" />
  <animate xlink:href="#r" attributeName="x" from="-%[1]d" to="%[1]d" dur="1s" repeatCount="indefinite" />
</svg>`, w, h)
}

// PlaceholderDataURL returns Shimmer(w, h) as a base64 data URL, ready for
// an <img src>.
func PlaceholderDataURL(w, h int) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(Shimmer(w, h)))
}
