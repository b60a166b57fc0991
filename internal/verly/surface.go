package verly

import (
	"image/color"

	"github.com/olivierh59500/parasites-go/internal/vec"
)

// Surface is the 2D drawing target handed in by the host driver.
type Surface interface {
	Line(a, b vec.Vector2, width float64, c color.Color)
	FillCircle(center vec.Vector2, r float64, c color.Color)
	StrokeCircle(center vec.Vector2, r, width float64, c color.Color)
}
