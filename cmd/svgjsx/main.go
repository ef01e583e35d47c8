// Command svgjsx converts an SVG document exported by an illustration
// tool into component markup with inlined styles, plain SVG markup,
// or a PNG preview.
package main

import (
	"bufio"
	"io"
	"os"

	"github.com/benoitkugler/svgjsx"
	"github.com/tdewolff/argp"
	"golang.org/x/exp/slog"
)

type Convert struct {
	Project   string `short:"p" desc:"Prefix of the canonical definition ids (default icon)"`
	Format    string `short:"f" desc:"Output format: jsx, svg or png (default jsx)"`
	Component string `desc:"Wrap the jsx output in an exported component with this name"`
	Indent    string `desc:"Indentation unit of the jsx output"`
	Mode      string `short:"m" desc:"Handling of unsupported shapes: strict, warn or ignore"`
	MaxDepth  int    `desc:"Maximum nesting of groups"`
	Minify    bool   `desc:"Minify the svg output"`
	Width     int    `desc:"Width of the png output"`
	Height    int    `desc:"Height of the png output"`
	Config    string `short:"c" desc:"YAML configuration file, overridden by flags"`
	Output    string `short:"o" desc:"Output file, standard output by default"`
	Verbose   bool   `short:"v" desc:"Log debug messages"`
	Input     string `index:"0" desc:"Input SVG file"`
}

func main() {
	root := argp.NewCmd(&Convert{}, "SVG to JSX converter for illustration tool exports")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Convert) flags() config {
	return config{
		Project:   cmd.Project,
		Format:    cmd.Format,
		Component: cmd.Component,
		Indent:    cmd.Indent,
		Mode:      cmd.Mode,
		MaxDepth:  cmd.MaxDepth,
		Minify:    cmd.Minify,
		Width:     cmd.Width,
		Height:    cmd.Height,
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (cmd *Convert) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	logger := newLogger(os.Stderr, cmd.Verbose)

	cfg := defaultConfig()
	if cmd.Config != "" {
		if err := readConfigFile(cmd.Config, &cfg); err != nil {
			return err
		}
	}
	cfg = cfg.merge(cmd.flags())

	opts, err := cfg.options(logger)
	if err != nil {
		return err
	}
	renderer, err := cfg.renderer(logger)
	if err != nil {
		return err
	}

	res, err := svgjsx.ConvertFile(cmd.Input, opts)
	if err != nil {
		return err
	}
	logger.Debug("resolved classes", "numbers", res.Classes.Numbers())

	if cmd.Output == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := renderer.Render(w, res); err != nil {
			return err
		}
		return w.Flush()
	}
	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	if err := renderer.Render(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
