package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/msgmark/internal/ui/pretty"
	"github.com/yaklabco/msgmark/pkg/entity"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Unit is the unit the results' offsets were counted in.
	// The text reporter needs it to cut excerpts; structured formats record it.
	Unit entity.Unit

	// ShowText prints each input's plain text before its entity table.
	ShowText bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses compact output where applicable: single-line JSON, and
	// no entity tables in text output.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// TermWidth bounds text tables. Zero detects it from Writer.
	TermWidth int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       pretty.ColorAuto,
		Unit:        entity.UnitBytes,
		ShowText:    true,
		ShowSummary: true,
	}
}
