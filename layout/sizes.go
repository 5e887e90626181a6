package layout

import "fmt"

// SizeSpec defines a physical sign product.
type SizeSpec struct {
	WidthMM    float64
	HeightMM   float64
	IsCircular bool
}

// Sizes is the catalog of physical sign sizes, keyed by size name.
var Sizes = map[string]SizeSpec{
	"saville":    {WidthMM: 115, HeightMM: 95},
	"dick":       {WidthMM: 140, HeightMM: 90},
	"barzan":     {WidthMM: 194, HeightMM: 143},
	"dracula":    {WidthMM: 95, HeightMM: 95, IsCircular: true},
	"baby_jesus": {WidthMM: 290, HeightMM: 190},
}

// Colors lists the available sign colors.
var Colors = []string{"silver", "gold", "white"}

// Rect is an axis-aligned rectangle in template coordinates (mm).
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// templateSignBounds holds the printable region of each template, measured
// from the SVG structure of the template files.
var templateSignBounds = map[string]Rect{
	"saville":    {X: 30, Y: 24, Width: 93, Height: 73},
	"dick":       {X: 25, Y: 30, Width: 110, Height: 60},
	"barzan":     {X: 25, Y: 25, Width: 164, Height: 113},
	"dracula":    {X: 37, Y: 27, Width: 85, Height: 85},
	"baby_jesus": {X: 25, Y: 25, Width: 240, Height: 140},
}

const (
	// fallbackMargin is the inset used when a size has no measured
	// template bounds.
	fallbackMargin = 20.0

	circularPadding    = 4.0
	rectangularPadding = 3.0
)

// portraitSize is the only size with portrait template variants.
const portraitSize = "baby_jesus"

// SignBounds is the drawable area on a sign template.
type SignBounds struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	IsCircular bool
	Padding    float64
}

// InnerX returns the left edge of the padded drawable area.
func (b SignBounds) InnerX() float64 { return b.X + b.Padding }

// InnerY returns the top edge of the padded drawable area.
func (b SignBounds) InnerY() float64 { return b.Y + b.Padding }

// InnerWidth returns the width of the padded drawable area.
func (b SignBounds) InnerWidth() float64 { return b.Width - 2*b.Padding }

// InnerHeight returns the height of the padded drawable area.
func (b SignBounds) InnerHeight() float64 { return b.Height - 2*b.Padding }

// CenterX returns the horizontal center of the sign bounds.
func (b SignBounds) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the sign bounds.
func (b SignBounds) CenterY() float64 { return b.Y + b.Height/2 }

// ConfigurationError reports a size key that has no SizeSpec. It indicates a
// template-authoring mismatch and should surface to the operator rather than
// being retried.
type ConfigurationError struct {
	Size string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown sign size %q", e.Size)
}

// ResolveSignBounds returns the drawable bounds for a sign size. Circular
// signs get a larger padding because their faces lose usable area near the
// edge. Only the portrait-capable size swaps width and height for
// orientation "portrait".
func ResolveSignBounds(size, orientation string) (SignBounds, error) {
	spec, ok := Sizes[size]
	if !ok {
		return SignBounds{}, &ConfigurationError{Size: size}
	}

	var sign Rect
	if tb, ok := templateSignBounds[size]; ok {
		sign = tb
	} else {
		sign = Rect{
			X:      fallbackMargin,
			Y:      fallbackMargin,
			Width:  spec.WidthMM - 2*fallbackMargin,
			Height: spec.HeightMM - 2*fallbackMargin,
		}
	}

	if size == portraitSize && orientation == "portrait" {
		sign.Width, sign.Height = sign.Height, sign.Width
	}

	padding := rectangularPadding
	if spec.IsCircular {
		padding = circularPadding
	}

	return SignBounds{
		X:          sign.X,
		Y:          sign.Y,
		Width:      sign.Width,
		Height:     sign.Height,
		IsCircular: spec.IsCircular,
		Padding:    padding,
	}, nil
}
