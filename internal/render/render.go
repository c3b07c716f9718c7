package render

import (
	"io"

	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/inspect"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatList  = "list"
)

// Options select and configure a renderer.
type Options struct {
	Format   string
	NoColor  bool
	Sections bool
}

// New returns the renderer for opts.Format.
func New(w io.Writer, opts Options) (inspect.Renderer, error) {
	switch opts.Format {
	case "", FormatHuman:
		return NewHuman(w, WithNoColor(opts.NoColor), WithSections(opts.Sections)), nil
	case FormatJSON:
		return NewJSON(w), nil
	case FormatList:
		return NewList(w, opts.NoColor), nil
	default:
		return nil, errors.Newf(errors.Validation, "unknown output format %q", opts.Format).WithOp("render.New")
	}
}
