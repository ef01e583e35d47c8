package main

import (
	"fmt"
	"os"

	"github.com/benoitkugler/svgjsx"
	"github.com/benoitkugler/svgjsx/svgmarkup"
	"github.com/benoitkugler/svgjsx/svgraster"
	"github.com/benoitkugler/svgjsx/svgreact"
	"github.com/benoitkugler/svgjsx/svgtree"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

// config holds the conversion settings, read from
// a YAML file and the command line.
type config struct {
	// Prefix of the canonical definition ids.
	Project string
	// One of jsx, svg or png.
	Format string
	// Name of the exported component, jsx only.
	Component string
	// One of strict, warn or ignore.
	Mode     string
	MaxDepth int `yaml:"maxDepth"`
	// Minified output, svg only.
	Minify bool
	// Image size, png only.
	Width  int
	Height int
	Indent string
}

func defaultConfig() config {
	return config{
		Project:  svgjsx.DefaultProject,
		Format:   "jsx",
		Mode:     svgtree.StrictErrorMode.String(),
		MaxDepth: svgtree.DefaultMaxDepth,
	}
}

// readConfigFile decodes the file on top of c.
func readConfigFile(filename string, c *config) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	return nil
}

// merge returns c where the non zero fields of over take precedence.
func (c config) merge(over config) config {
	if over.Project != "" {
		c.Project = over.Project
	}
	if over.Format != "" {
		c.Format = over.Format
	}
	if over.Component != "" {
		c.Component = over.Component
	}
	if over.Mode != "" {
		c.Mode = over.Mode
	}
	if over.MaxDepth != 0 {
		c.MaxDepth = over.MaxDepth
	}
	if over.Minify {
		c.Minify = true
	}
	if over.Width != 0 {
		c.Width = over.Width
	}
	if over.Height != 0 {
		c.Height = over.Height
	}
	if over.Indent != "" {
		c.Indent = over.Indent
	}
	return c
}

func (c config) options(logger *slog.Logger) (svgjsx.Options, error) {
	mode, err := svgtree.ParseErrorMode(c.Mode)
	if err != nil {
		return svgjsx.Options{}, err
	}
	return svgjsx.Options{Project: c.Project, ErrorMode: mode, MaxDepth: c.MaxDepth, Logger: logger}, nil
}

func (c config) renderer(logger *slog.Logger) (svgjsx.Renderer, error) {
	switch c.Format {
	case "jsx", "":
		return svgreact.Renderer{Component: c.Component, Indent: c.Indent}, nil
	case "svg":
		return svgmarkup.Renderer{Minify: c.Minify}, nil
	case "png":
		return svgraster.Renderer{Width: c.Width, Height: c.Height, Logger: logger}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", c.Format)
}
