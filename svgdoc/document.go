// Package svgdoc parses, mutates and serializes SVG template documents for
// sign composition.
package svgdoc

import (
	"bytes"
	stdxml "encoding/xml"
	"fmt"
	"io"
	"sort"

	jxml "github.com/jphsd/xml"
)

const (
	// SVGNamespace is the SVG element namespace.
	SVGNamespace = "http://www.w3.org/2000/svg"
	// XlinkNamespace is used for image hrefs.
	XlinkNamespace = "http://www.w3.org/1999/xlink"
)

// nsPrefixes maps the namespace URLs seen in sign templates to their
// conventional serialization prefixes. The default (empty) prefix is SVG.
var nsPrefixes = map[string]string{
	SVGNamespace:   "",
	XlinkNamespace: "xlink",
	"http://www.inkscape.org/namespaces/inkscape":          "inkscape",
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.0.dtd": "sodipodi",
	"http://purl.org/dc/elements/1.1/":                     "dc",
	"http://creativecommons.org/ns#":                       "cc",
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#":          "rdf",
	"http://www.w3.org/XML/1998/namespace":                 "xml",
}

// Element is a node in the document tree. Text content is stored in child
// elements with an empty Name, so mixed content keeps its order.
type Element struct {
	Name     stdxml.Name
	Attr     []stdxml.Attr
	Text     string
	Parent   *Element
	Children []*Element
}

// IsText reports whether the element is a character-data node.
func (e *Element) IsText() bool { return e.Name.Local == "" }

// LocalName returns the element's local tag name.
func (e *Element) LocalName() string { return e.Name.Local }

// AttrValue returns the value of the first attribute with the given local
// name, or "" when absent.
func (e *Element) AttrValue(local string) string {
	for _, a := range e.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets or replaces an attribute by qualified name.
func (e *Element) SetAttr(name stdxml.Name, value string) {
	for i, a := range e.Attr {
		if a.Name == name {
			e.Attr[i].Value = value
			return
		}
	}
	e.Attr = append(e.Attr, stdxml.Attr{Name: name, Value: value})
}

// AppendChild adds a child node and fixes up its parent pointer.
func (e *Element) AppendChild(child *Element) {
	child.Parent = e
	e.Children = append(e.Children, child)
}

// NewElement creates an element in the SVG namespace.
func NewElement(local string) *Element {
	return &Element{Name: stdxml.Name{Space: SVGNamespace, Local: local}}
}

// Parse reads an SVG document into an element tree. Namespaces are resolved
// by the tokenizer; the serializer maps them back to prefixes.
func Parse(r io.Reader) (*Element, error) {
	dec := jxml.NewXMLDecoder(r)

	var root, cur *Element
	dec.StartElement = func(se stdxml.StartElement) error {
		elem := &Element{Name: se.Name, Attr: se.Attr}
		if root == nil {
			root = elem
		} else {
			cur.AppendChild(elem)
		}
		cur = elem
		return nil
	}
	dec.EndElement = func(ee stdxml.EndElement) error {
		cur = cur.Parent
		return nil
	}
	dec.CharData = func(cd stdxml.CharData) error {
		if cur == nil {
			return nil
		}
		cur.AppendChild(&Element{Text: string(cd)})
		return nil
	}

	if err := dec.Process(); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("parse svg: no root element")
	}
	return root, nil
}

// Marshal serializes the tree back to SVG bytes. When xmlDecl is true an XML
// declaration header is included (used for the master design file hand-off).
func Marshal(root *Element, xmlDecl bool) []byte {
	var buf bytes.Buffer
	if xmlDecl {
		buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}

	prefixes := collectPrefixes(root)
	writeElement(&buf, root, prefixes, true)
	return buf.Bytes()
}

// collectPrefixes walks the tree and assigns a prefix to every namespace in
// use. Unknown namespaces get generated ns1, ns2, ... prefixes.
func collectPrefixes(root *Element) map[string]string {
	prefixes := map[string]string{}
	n := 0

	var assign func(space string)
	assign = func(space string) {
		if space == "" || space == "xmlns" {
			return
		}
		if _, ok := prefixes[space]; ok {
			return
		}
		if p, ok := nsPrefixes[space]; ok {
			prefixes[space] = p
			return
		}
		n++
		prefixes[space] = fmt.Sprintf("ns%d", n)
	}

	var walk func(e *Element)
	walk = func(e *Element) {
		if e.IsText() {
			return
		}
		assign(e.Name.Space)
		for _, a := range e.Attr {
			assign(a.Name.Space)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(root)
	return prefixes
}

func qualify(name stdxml.Name, prefixes map[string]string) string {
	if name.Space == "" {
		return name.Local
	}
	if p := prefixes[name.Space]; p != "" {
		return p + ":" + name.Local
	}
	return name.Local
}

func writeElement(buf *bytes.Buffer, e *Element, prefixes map[string]string, isRoot bool) {
	if e.IsText() {
		_ = stdxml.EscapeText(buf, []byte(e.Text))
		return
	}

	tag := qualify(e.Name, prefixes)
	buf.WriteByte('<')
	buf.WriteString(tag)

	if isRoot {
		// Re-emit namespace declarations in deterministic order.
		spaces := make([]string, 0, len(prefixes))
		for space := range prefixes {
			spaces = append(spaces, space)
		}
		sort.Slice(spaces, func(i, j int) bool { return prefixes[spaces[i]] < prefixes[spaces[j]] })
		for _, space := range spaces {
			if prefixes[space] == "xml" {
				continue
			}
			if prefixes[space] == "" {
				buf.WriteString(` xmlns="` + space + `"`)
			} else {
				buf.WriteString(` xmlns:` + prefixes[space] + `="` + space + `"`)
			}
		}
	}

	for _, a := range e.Attr {
		// Declarations are regenerated at the root.
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(qualify(a.Name, prefixes))
		buf.WriteString(`="`)
		_ = stdxml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}

	if len(e.Children) == 0 {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')
	for _, c := range e.Children {
		writeElement(buf, c, prefixes, false)
	}
	buf.WriteString("</" + tag + ">")
}
