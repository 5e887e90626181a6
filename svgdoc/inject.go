package svgdoc

import (
	"bytes"
	"encoding/base64"
	stdxml "encoding/xml"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NBNEORIGIN/signmaker/layout"
)

// IconKind distinguishes vector icons (spliced as nodes) from raster icons
// (embedded as data URIs).
type IconKind int

const (
	IconVector IconKind = iota
	IconRaster
)

// Icon is a loaded icon asset with its intrinsic dimensions.
type Icon struct {
	Kind    IconKind
	Root    *Element // vector icons
	DataURI string   // raster icons
	Width   float64
	Height  float64
}

// AssetMissingError reports an icon filename that resolved to no file. It is
// operational, not structural: callers log it and continue without the icon.
type AssetMissingError struct {
	Filename string
}

func (e *AssetMissingError) Error() string {
	return fmt.Sprintf("icon not found: %s", e.Filename)
}

// iconExtensions are tried in order when the literal filename is absent.
var iconExtensions = []string{".svg", ".png", ".SVG", ".PNG"}

// LoadIcon resolves an icon by filename under iconsDir. The extension is
// optional; common variants are tried when the literal name does not exist.
func LoadIcon(iconsDir, filename string) (*Icon, error) {
	path := filepath.Join(iconsDir, filename)
	if _, err := os.Stat(path); err != nil {
		stem := strings.TrimSuffix(path, filepath.Ext(path))
		found := false
		for _, ext := range iconExtensions {
			if _, err := os.Stat(stem + ext); err == nil {
				path = stem + ext
				found = true
				break
			}
		}
		if !found {
			return nil, &AssetMissingError{Filename: filename}
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open icon %s: %w", path, err)
		}
		defer f.Close()
		root, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse icon %s: %w", path, err)
		}
		return &Icon{
			Kind:   IconVector,
			Root:   root,
			Width:  parseLength(root.AttrValue("width")),
			Height: parseLength(root.AttrValue("height")),
		}, nil
	case ".png":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read icon %s: %w", path, err)
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode icon %s: %w", path, err)
		}
		return &Icon{
			Kind:    IconRaster,
			DataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
			Width:   float64(cfg.Width),
			Height:  float64(cfg.Height),
		}, nil
	}

	return nil, &AssetMissingError{Filename: filename}
}

// parseLength reads an SVG length attribute, ignoring mm/px unit suffixes.
// Unparseable values fall back to the 100-unit viewBox convention the icon
// library is authored at.
func parseLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(s), "mm"), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 100
	}
	return v
}

// fitScale returns the uniform scale that fits (w, h) inside target without
// stretching, plus the centered offset.
func fitScale(w, h float64, target layout.Rect) (scale, offsetX, offsetY float64) {
	scale = 1
	if w > 0 && h > 0 {
		scale = target.Width / w
		if sy := target.Height / h; sy < scale {
			scale = sy
		}
	}
	offsetX = target.X + (target.Width-w*scale)/2
	offsetY = target.Y + (target.Height-h*scale)/2
	return
}

// excludedIconNodes are icon child nodes that would leak editor cruft or
// collide with template ids if spliced into the composed document.
var excludedIconNodes = map[string]bool{
	"defs":      true,
	"namedview": true,
	"metadata":  true,
}

// InjectIcon splices the icon into the document at the target rectangle,
// preserving aspect ratio and centering within the target. It returns the
// node added to the tree.
func InjectIcon(root *Element, icon *Icon, target layout.Rect) *Element {
	scale, offsetX, offsetY := fitScale(icon.Width, icon.Height, target)

	if icon.Kind == IconRaster {
		img := NewElement("image")
		img.SetAttr(stdxml.Name{Local: "x"}, fmtFloat(offsetX))
		img.SetAttr(stdxml.Name{Local: "y"}, fmtFloat(offsetY))
		img.SetAttr(stdxml.Name{Local: "width"}, fmtFloat(icon.Width*scale))
		img.SetAttr(stdxml.Name{Local: "height"}, fmtFloat(icon.Height*scale))
		img.SetAttr(stdxml.Name{Space: XlinkNamespace, Local: "href"}, icon.DataURI)
		root.AppendChild(img)
		return img
	}

	group := NewElement("g")
	group.SetAttr(stdxml.Name{Local: "id"}, "injected_icon")
	group.SetAttr(stdxml.Name{Local: "transform"},
		fmt.Sprintf("translate(%s,%s) scale(%s)", fmtFloat(offsetX), fmtFloat(offsetY), fmtFloat(scale)))

	for _, child := range icon.Root.Children {
		if !child.IsText() && excludedIconNodes[child.LocalName()] {
			continue
		}
		group.AppendChild(child)
	}

	root.AppendChild(group)
	return group
}

// AddText appends a text node at the given anchor. Font size is in the
// document's native millimetre units.
func AddText(root *Element, text string, x, y, fontSize float64, anchor, fontFamily, fontWeight string) *Element {
	elem := NewElement("text")
	elem.SetAttr(stdxml.Name{Local: "x"}, fmtFloat(x))
	elem.SetAttr(stdxml.Name{Local: "y"}, fmtFloat(y))
	elem.SetAttr(stdxml.Name{Local: "style"},
		fmt.Sprintf("font-family:%s;font-weight:%s;font-size:%smm;text-anchor:%s;fill:#000000;",
			fontFamily, fontWeight, fmtFloat(fontSize), anchor))
	elem.AppendChild(&Element{Text: text})
	root.AppendChild(elem)
	return elem
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
