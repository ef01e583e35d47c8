// Package svgdoc reads an SVG document exported by an illustration
// tool into a light element tree, split into the parts consumed by
// the conversion: the view box, the definitions section, the embedded
// style text and the ordered top-level groups.
package svgdoc

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/svgjsx/internal/logutil"
	"github.com/benoitkugler/svgjsx/svgerr"
	"golang.org/x/exp/slog"
	"golang.org/x/net/html/charset"
)

// Element is a node of the source document. Character data made only
// of white space is dropped, so Children holds elements only, in
// document order.
type Element struct {
	Name     string // local name
	Attrs    []xml.Attr
	Children []*Element
	Text     string // concatenated character data
}

// Attr returns the value of the attribute with the given local name,
// ignoring namespaces, so that "href" matches "xlink:href".
func (e *Element) Attr(local string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// Get is like Attr, returning an empty string for missing attributes.
func (e *Element) Get(local string) string {
	v, _ := e.Attr(local)
	return v
}

// ChildrenNamed returns the direct children with the given local name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Document is the parsed input of one conversion.
// It is not modified once returned by Parse.
type Document struct {
	ViewBox       string
	Width, Height string // top level width and height attributes

	// Defs holds the children of the definitions sections,
	// in document order, style blocks included.
	Defs []*Element
	// Style is the text of every style block, in document order.
	Style string
	// Groups are the top-level g elements.
	Groups []*Element
	// Others are the remaining top-level elements, which are not
	// converted. Metadata elements are not included.
	Others []*Element
}

// skipped silently at the top level
var metadataElements = map[string]bool{
	"title":    true,
	"desc":     true,
	"metadata": true,
}

// Parse reads a whole document from stream. The encoding declared
// in the XML prolog is honored.
func Parse(stream io.Reader, logger *slog.Logger) (*Document, error) {
	logger = logutil.Or(logger)

	root, err := readTree(stream)
	if err != nil {
		return nil, err
	}
	if root.Name != "svg" {
		return nil, svgerr.New(svgerr.InvalidDocument, root.Name, "root element is not svg")
	}

	doc := &Document{
		ViewBox: root.Get("viewBox"),
		Width:   root.Get("width"),
		Height:  root.Get("height"),
	}
	var style strings.Builder
	for _, child := range root.Children {
		switch child.Name {
		case "defs":
			doc.Defs = append(doc.Defs, child.Children...)
			for _, def := range child.ChildrenNamed("style") {
				style.WriteString(def.Text)
			}
		case "style":
			style.WriteString(child.Text)
		case "g":
			doc.Groups = append(doc.Groups, child)
		default:
			if !metadataElements[child.Name] {
				logger.Debug("top level element outside of a group", "element", child.Name)
				doc.Others = append(doc.Others, child)
			}
		}
	}
	doc.Style = style.String()
	return doc, nil
}

// ReadFile opens and parses the named file.
func ReadFile(filename string, logger *slog.Logger) (*Document, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Parse(fin, logger)
}

// readTree builds the element tree with an explicit stack,
// so that nesting depth is bounded by memory only.
func readTree(stream io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
	)
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, svgerr.New(svgerr.InvalidDocument, "", "malformed xml: %s", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			el := &Element{Name: se.Name.Local, Attrs: se.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, svgerr.New(svgerr.InvalidDocument, el.Name, "multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) != 0 {
				stack[len(stack)-1].Text += string(se)
			}
		}
	}
	if root == nil {
		return nil, svgerr.New(svgerr.InvalidDocument, "", "no root element")
	}
	return root, nil
}
