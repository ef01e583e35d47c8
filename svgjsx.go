// Package svgjsx converts SVG documents exported by illustration tools,
// which style their shapes through a class based style sheet, into a
// tree of shapes with inlined styles, ready to be embedded as component
// markup.
//
// A conversion resolves the gradients and clip paths of the document
// under canonical ids (see package svgdefs), parses the rewritten style
// sheet into a class table (see package svgstyle), and rebuilds the
// shape tree (see package svgtree). The Result is then serialized by a
// Renderer, such as svgreact.Renderer, svgmarkup.Renderer or
// svgraster.Renderer.
package svgjsx

import (
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/svgjsx/internal/logutil"
	"github.com/benoitkugler/svgjsx/svgdefs"
	"github.com/benoitkugler/svgjsx/svgdoc"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"github.com/benoitkugler/svgjsx/svgtree"
	"golang.org/x/exp/slog"
)

// DefaultProject is the canonical id prefix used when none is given.
const DefaultProject = "icon"

// Options configures a conversion.
type Options struct {
	// Project prefixes the canonical ids of the definitions.
	Project string
	// ErrorMode decides the fate of unsupported shapes.
	ErrorMode svgtree.ErrorMode
	// MaxDepth bounds the nesting of groups.
	MaxDepth int
	Logger   *slog.Logger
}

// DefaultOptions returns the options used by the command line tool,
// which are also the defaults applied to a zero Options.
func DefaultOptions() Options {
	return Options{
		Project:   DefaultProject,
		ErrorMode: svgtree.StrictErrorMode,
		MaxDepth:  svgtree.DefaultMaxDepth,
	}
}

// Result is the outcome of a conversion.
type Result struct {
	ViewBox       string
	Width, Height string

	// Definitions are the canonical gradients and clip paths.
	Definitions []svgdefs.Definition
	// Style is the style sheet, with references rewritten to canonical ids.
	Style   string
	Classes svgstyle.Classes
	Tree    []*svgtree.Group
}

// Renderer serializes a conversion result.
type Renderer interface {
	Render(w io.Writer, res *Result) error
}

// Convert reads a whole document from r and converts it.
// On failure, no partial result is returned.
func Convert(r io.Reader, opts Options) (*Result, error) {
	logger := logutil.Or(opts.Logger)
	doc, err := svgdoc.Parse(r, logger)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return ConvertDocument(doc, opts)
}

// ConvertDocument converts an already parsed document.
func ConvertDocument(doc *svgdoc.Document, opts Options) (*Result, error) {
	logger := logutil.Or(opts.Logger)
	project := opts.Project
	if project == "" {
		project = DefaultProject
	}

	defs, err := svgdefs.Resolve(project, doc.Defs, doc.Style, logger)
	if err != nil {
		return nil, fmt.Errorf("resolving definitions: %w", err)
	}
	classes := svgstyle.ParseClasses(defs.Style, logger)
	treeOpts := svgtree.Options{
		ErrorMode: opts.ErrorMode,
		MaxDepth:  opts.MaxDepth,
		Logger:    logger,
	}
	if err := svgtree.CheckTopLevel(doc.Others, treeOpts); err != nil {
		return nil, fmt.Errorf("building shape tree: %w", err)
	}
	tree, err := svgtree.Build(classes, doc.Groups, treeOpts)
	if err != nil {
		return nil, fmt.Errorf("building shape tree: %w", err)
	}
	logger.Debug("converted document", "definitions", len(defs.Definitions),
		"classes", len(classes), "groups", len(tree))
	return &Result{
		ViewBox:     doc.ViewBox,
		Width:       doc.Width,
		Height:      doc.Height,
		Definitions: defs.Definitions,
		Style:       defs.Style,
		Classes:     classes,
		Tree:        tree,
	}, nil
}

// ConvertFile opens and converts the named file.
func ConvertFile(filename string, opts Options) (*Result, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Convert(fin, opts)
}
