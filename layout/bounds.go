package layout

import (
	"encoding/csv"
	"os"
	"strconv"
)

// BoundsKey identifies one configured element box in the layout bounds table.
type BoundsKey struct {
	Template    string
	Size        string
	Orientation string
	LayoutMode  string
	Element     string
}

// BoundsTable maps configured keys to element rectangles. It is loaded fresh
// from its CSV source for every layout calculation so that layout staff can
// tune the file without restarting the process.
type BoundsTable map[BoundsKey]Rect

// LoadBoundsTable reads the layout bounds CSV. A missing file yields an empty
// table; malformed rows are skipped. Both cases fall back to calculated
// geometry, which keeps a half-edited file from breaking image generation.
func LoadBoundsTable(path string) BoundsTable {
	table := BoundsTable{}

	f, err := os.Open(path)
	if err != nil {
		return table
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return table
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[name] = i
	}

	field := func(row []string, name, fallback string) string {
		i, ok := col[name]
		if !ok || i >= len(row) || row[i] == "" {
			return fallback
		}
		return row[i]
	}

	for _, row := range records[1:] {
		if len(row) < len(records[0]) {
			continue
		}
		x, errX := strconv.ParseFloat(field(row, "x", "0"), 64)
		y, errY := strconv.ParseFloat(field(row, "y", "0"), 64)
		w, errW := strconv.ParseFloat(field(row, "width", "0"), 64)
		h, errH := strconv.ParseFloat(field(row, "height", "0"), 64)
		if errX != nil || errY != nil || errW != nil || errH != nil {
			continue
		}

		key := BoundsKey{
			Template:    field(row, "template", "main"),
			Size:        field(row, "size", ""),
			Orientation: field(row, "orientation", "landscape"),
			LayoutMode:  field(row, "layout_mode", ""),
			Element:     field(row, "element", ""),
		}
		table[key] = Rect{X: x, Y: y, Width: w, Height: h}
	}

	return table
}
