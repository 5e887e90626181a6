package layout

import (
	"strconv"
	"strings"
)

// LayoutMode selects how an icon and text are arranged within a sign's
// printable area.
type LayoutMode int

const (
	ModeA LayoutMode = iota
	ModeB
	ModeC
	ModeD
	ModeE
	ModeF
	// ModeDefault covers mode letters with no dedicated geometry; they get
	// the conservative 60% placement and match no bounds table rows.
	ModeDefault
)

var modeLetters = [...]string{"A", "B", "C", "D", "E", "F"}

// ParseLayoutMode maps a mode letter to its LayoutMode. Unknown letters
// parse to ModeDefault.
func ParseLayoutMode(s string) LayoutMode {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "":
		return ModeA
	case "B":
		return ModeB
	case "C":
		return ModeC
	case "D":
		return ModeD
	case "E":
		return ModeE
	case "F":
		return ModeF
	default:
		return ModeDefault
	}
}

// Letter returns the single-letter form used in product records and the
// bounds table. ModeDefault has no letter.
func (m LayoutMode) Letter() string {
	if m < ModeA || m > ModeF {
		return ""
	}
	return modeLetters[m]
}

// TextElement is a positioned text line ready for injection.
type TextElement struct {
	Text     string
	X        float64
	Y        float64
	FontSize float64
	Anchor   string
}

// LayoutResult holds the computed icon rectangle and text placements for one
// sign face.
type LayoutResult struct {
	Icon Rect
	Text []TextElement
}

// templateFamily is the template category keyed in the bounds table. Only
// "main" exists today.
const templateFamily = "main"

const (
	fontWidthDivisor  = 3.2
	fontHeightDivisor = 3.0
	baselineFraction  = 0.75
)

// Calculator computes icon and text placement. BoundsPath points at the
// layout bounds CSV, which is re-read on every call.
type Calculator struct {
	BoundsPath string
}

// Calculate computes positions and sizes for the icon and text lines. When
// the bounds table defines an icon box for (size, orientation, mode) the
// configured boxes win; otherwise placement falls back to geometry derived
// from the sign bounds.
func (c *Calculator) Calculate(bounds SignBounds, mode LayoutMode, textLines []string, iconScale, textScale float64, size, orientation string) LayoutResult {
	// Reload so edits to the CSV take effect immediately.
	table := LoadBoundsTable(c.BoundsPath)

	var activeLines []string
	for _, t := range textLines {
		if t != "" {
			activeLines = append(activeLines, t)
		}
	}

	iconKey := BoundsKey{templateFamily, size, orientation, mode.Letter(), "icon"}
	if box, ok := table[iconKey]; ok {
		return dataDrivenLayout(table, box, mode, activeLines, iconScale, textScale, size, orientation)
	}
	return fallbackLayout(bounds, mode, activeLines, iconScale, textScale)
}

// dataDrivenLayout places the icon and text from configured boxes. The icon
// box is scaled about its own center so tuning the scale never moves the
// centroid. Text slots without a configured box are omitted.
func dataDrivenLayout(table BoundsTable, box Rect, mode LayoutMode, lines []string, iconScale, textScale float64, size, orientation string) LayoutResult {
	iconW := box.Width * iconScale
	iconH := box.Height * iconScale

	result := LayoutResult{
		Icon: Rect{
			X:      box.X + (box.Width-iconW)/2,
			Y:      box.Y + (box.Height-iconH)/2,
			Width:  iconW,
			Height: iconH,
		},
	}

	for idx, line := range lines {
		textKey := BoundsKey{templateFamily, size, orientation, mode.Letter(), "text_" + strconv.Itoa(idx+1)}
		tb, ok := table[textKey]
		if !ok {
			continue
		}
		numChars := len(line)
		if numChars == 0 {
			numChars = 1
		}
		fontSize := tb.Width / (float64(numChars) * fontWidthDivisor)
		if maxByHeight := tb.Height / fontHeightDivisor; fontSize > maxByHeight {
			fontSize = maxByHeight
		}
		result.Text = append(result.Text, TextElement{
			Text:     line,
			X:        tb.X + tb.Width/2,
			Y:        tb.Y + tb.Height*baselineFraction,
			FontSize: fontSize * textScale,
			Anchor:   "middle",
		})
	}

	return result
}

// fallbackLayout derives placement from the sign bounds alone.
func fallbackLayout(bounds SignBounds, mode LayoutMode, lines []string, iconScale, textScale float64) LayoutResult {
	innerW := bounds.InnerWidth()
	innerH := bounds.InnerHeight()

	maxFontSize := 5.0 * textScale
	var result LayoutResult

	switch mode {
	case ModeA:
		result.Icon.Width = innerW * 0.7 * iconScale
		result.Icon.Height = innerH * 0.7 * iconScale
		result.Icon.X = bounds.CenterX() - result.Icon.Width/2
		result.Icon.Y = bounds.CenterY() - result.Icon.Height/2
	case ModeB, ModeC:
		// B/C icons carry their own caption text and are weighted
		// toward the top of their viewBox, so nudge them down.
		result.Icon.Height = innerH * 0.90 * iconScale
		result.Icon.Width = result.Icon.Height
		result.Icon.X = bounds.CenterX() - result.Icon.Width/2
		result.Icon.Y = bounds.CenterY() - result.Icon.Height/2 + result.Icon.Height*0.08

		if len(lines) > 0 {
			textY := result.Icon.Y + result.Icon.Height + innerH*0.05
			for _, line := range lines {
				result.Text = append(result.Text, TextElement{
					Text:     line,
					X:        bounds.CenterX(),
					Y:        textY,
					FontSize: maxFontSize,
					Anchor:   "middle",
				})
				textY += maxFontSize + 2
			}
		}
	case ModeD, ModeE, ModeF, ModeDefault:
		result.Icon.Width = innerW * 0.6 * iconScale
		result.Icon.Height = innerH * 0.6 * iconScale
		result.Icon.X = bounds.CenterX() - result.Icon.Width/2
		result.Icon.Y = bounds.CenterY() - result.Icon.Height/2
	}

	return result
}
