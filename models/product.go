package models

import "strings"

// Product represents a sign product record from the database.
type Product struct {
	ID           int64   `json:"id"`
	MNumber      string  `json:"mNumber"`
	Description  string  `json:"description"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	Orientation  string  `json:"orientation"`
	LayoutMode   string  `json:"layoutMode"`
	IconFiles    string  `json:"iconFiles"` // comma-separated filenames
	TextLine1    string  `json:"textLine1"`
	TextLine2    string  `json:"textLine2"`
	TextLine3    string  `json:"textLine3"`
	Font         string  `json:"font"`
	Material     string  `json:"material"`
	MountingType string  `json:"mountingType"`
	EAN          string  `json:"ean"`
	QAStatus     string  `json:"qaStatus"`
	IconScale    float64 `json:"iconScale"`
	TextScale    float64 `json:"textScale"`
	IconOffsetX  float64 `json:"iconOffsetX"`
	IconOffsetY  float64 `json:"iconOffsetY"`
}

// Defaults applied when product fields are missing or zero-valued.
const (
	DefaultSize        = "saville"
	DefaultColor       = "silver"
	DefaultOrientation = "landscape"
	DefaultLayoutMode  = "A"
	DefaultFont        = "arial_heavy"
)

// RenderSpec is the normalized per-render view of a product: defaults applied,
// size/color/orientation lowercased, icon filenames split. It is a pure input
// value, built fresh for each render call.
type RenderSpec struct {
	Size        string
	Color       string
	Orientation string
	LayoutMode  string
	IconFiles   []string
	TextLines   []string
	Font        string
	IconScale   float64
	TextScale   float64
	IconOffsetX float64
	IconOffsetY float64
}

// RenderSpec normalizes the product for the image pipeline.
func (p *Product) RenderSpec() RenderSpec {
	spec := RenderSpec{
		Size:        strings.ToLower(defaultString(p.Size, DefaultSize)),
		Color:       strings.ToLower(defaultString(p.Color, DefaultColor)),
		Orientation: strings.ToLower(defaultString(p.Orientation, DefaultOrientation)),
		LayoutMode:  strings.ToUpper(defaultString(p.LayoutMode, DefaultLayoutMode)),
		Font:        defaultString(p.Font, DefaultFont),
		TextLines:   []string{p.TextLine1, p.TextLine2, p.TextLine3},
		IconScale:   defaultScale(p.IconScale),
		TextScale:   defaultScale(p.TextScale),
		IconOffsetX: p.IconOffsetX,
		IconOffsetY: p.IconOffsetY,
	}

	for _, f := range strings.Split(p.IconFiles, ",") {
		if f = strings.TrimSpace(f); f != "" {
			spec.IconFiles = append(spec.IconFiles, f)
		}
	}

	return spec
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func defaultScale(v float64) float64 {
	if v == 0 {
		return 1.0
	}
	return v
}
