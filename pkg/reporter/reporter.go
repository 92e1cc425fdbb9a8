// Package reporter writes conversion results in text, JSON, YAML or msgpack.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/msgmark/pkg/runner"
)

// Reporter formats and writes conversion results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of entities reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatYAML:
		return NewYAMLReporter(opts), nil
	case FormatMsgpack:
		return NewMsgpackReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
