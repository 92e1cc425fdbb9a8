package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/msgmark/pkg/runner"
)

// MsgpackReporter writes results as a msgpack-encoded Document.
// Successive reports on one writer form a stream of documents that
// msgpack.NewDecoder reads back one at a time.
type MsgpackReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewMsgpackReporter creates a new msgpack reporter.
func NewMsgpackReporter(opts Options) *MsgpackReporter {
	return &MsgpackReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *MsgpackReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := BuildDocument(result, r.opts)

	encoder := msgpack.NewEncoder(r.bw)
	encoder.SetSortMapKeys(true)
	if err := encoder.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode msgpack: %w", err)
	}

	return doc.Summary.EntitiesTotal, nil
}
