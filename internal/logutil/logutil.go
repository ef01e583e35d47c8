// Package logutil holds the logger defaults shared by the conversion packages.
package logutil

import (
	"io"

	"golang.org/x/exp/slog"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Or returns l, or a logger dropping every record when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l == nil {
		return discard
	}
	return l
}
