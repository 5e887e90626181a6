package utils

import (
	"fmt"
	"strings"
)

// ImageKinds are the marketplace image variants, in export order.
var ImageKinds = []string{"main", "dimensions", "peel_and_stick", "rear"}

// ImageKindNumbers maps image kinds to the numbered filenames staff expect
// in export folders.
var ImageKindNumbers = map[string]string{
	"main":           "001",
	"dimensions":     "002",
	"peel_and_stick": "003",
	"rear":           "004",
}

// sizeDisplay maps size keys to the display names used in export folders.
var sizeDisplay = map[string]string{
	"dracula":    "Dracula",
	"saville":    "Saville",
	"dick":       "Dick",
	"barzan":     "Barzan",
	"baby_jesus": "Baby_Jesus",
}

// colorDisplay maps color keys to display names.
var colorDisplay = map[string]string{
	"silver": "Silver",
	"gold":   "Gold",
	"white":  "White",
}

// TemplateFilename composes the template filename for a product variant.
// Only baby_jesus has portrait template variants.
func TemplateFilename(color, size, orientation, kind string) string {
	if size == "baby_jesus" && orientation == "portrait" {
		return fmt.Sprintf("%s_%s_portrait_%s.svg", color, size, kind)
	}
	return fmt.Sprintf("%s_%s_%s.svg", color, size, kind)
}

// SizeDisplay returns the human-readable form of a size key.
func SizeDisplay(size string) string {
	if d, ok := sizeDisplay[size]; ok {
		return d
	}
	return titleCase(size)
}

// ColorDisplay returns the human-readable form of a color key.
func ColorDisplay(color string) string {
	if d, ok := colorDisplay[color]; ok {
		return d
	}
	return titleCase(color)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// MountingDisplay returns the human-readable mounting type.
func MountingDisplay(mounting string) string {
	if mounting == "self_adhesive" {
		return "Self Adhesive"
	}
	return "Pre-Drilled"
}

// ExportFolderName builds the staff-facing folder name for a product's
// export package.
func ExportFolderName(mNumber, description, color, size, mounting string) string {
	if mNumber == "" {
		mNumber = "UNKNOWN"
	}
	if description == "" {
		description = "Sign"
	}
	return fmt.Sprintf("%s %s %s aluminium sign %s %s",
		mNumber,
		MountingDisplay(mounting),
		description,
		ColorDisplay(strings.ToLower(color)),
		SizeDisplay(strings.ToLower(size)),
	)
}
