package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/msgmark/internal/logging"
	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/fsutil"
)

// Converter turns one input text into formatted text. *markup.Parser
// satisfies it. Implementations must be safe for concurrent use.
type Converter interface {
	Parse(ctx context.Context, text string) entity.FormattedText
}

// Input is an in-memory input such as stdin or a --text argument.
type Input struct {
	Name string
	Text string
}

// Runner converts inputs concurrently with a Converter.
type Runner struct {
	Converter Converter
}

// New creates a new Runner with the given converter.
func New(converter Converter) *Runner {
	return &Runner{Converter: converter}
}

// item is one unit of work. Files are read lazily by the worker.
type item struct {
	name string
	text string
	file bool
}

type indexedOutcome struct {
	index   int
	outcome FileOutcome
}

// Run discovers files under opts.Paths and converts them concurrently.
// Outcomes are returned in sorted path order with aggregate stats.
//
// A file that cannot be read or written is recorded on its outcome; it does
// not stop the run. Cancelling ctx stops the run and returns the outcomes
// collected so far together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("discovered inputs",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldWorkingDir, opts.WorkingDir,
	)

	items := make([]item, len(files))
	for i, path := range files {
		items[i] = item{name: path, file: true}
	}

	return r.process(ctx, items, opts)
}

// RunInputs converts in-memory inputs with the same accounting as Run.
// Outcomes keep the order of inputs. opts.Write is ignored.
func (r *Runner) RunInputs(ctx context.Context, inputs []Input, opts Options) (*Result, error) {
	items := make([]item, len(inputs))
	for i, input := range inputs {
		items[i] = item{name: input.Name, text: input.Text}
	}

	return r.process(ctx, items, opts)
}

func (r *Runner) process(ctx context.Context, items []item, opts Options) (*Result, error) {
	result := &Result{
		Files: make([]FileOutcome, 0, len(items)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(items)

	if len(items) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(items))

	workCh := make(chan int)
	outCh := make(chan indexedOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			r.worker(ctx, items, opts, workCh, outCh)
		})
	}

	go func() {
		defer close(workCh)
		for index := range items {
			select {
			case <-ctx.Done():
				return
			case workCh <- index:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; slot outcomes by index.
	outcomes := make([]*FileOutcome, len(items))
	for out := range outCh {
		outcomes[out.index] = &out.outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker converts items named on workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	items []item,
	opts Options,
	workCh <-chan int,
	outCh chan<- indexedOutcome,
) {
	for index := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.convert(ctx, items[index], opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- indexedOutcome{index: index, outcome: outcome}:
		}
	}
}

func (r *Runner) convert(ctx context.Context, it item, opts Options) FileOutcome {
	outcome := FileOutcome{Path: it.name}
	logger := logging.FromContext(ctx)

	text := it.text
	if it.file {
		content, err := fsutil.ReadInput(ctx, it.name, opts.effectiveMaxFileSize())
		if err != nil {
			logger.Debug("read failed", logging.FieldPath, it.name, logging.FieldError, err)
			outcome.Error = err
			return outcome
		}
		text = string(content)
	}

	outcome.Result = r.Converter.Parse(ctx, text)

	if opts.Write && it.file {
		path, err := writeResult(ctx, it.name, outcome.Result)
		if err != nil {
			logger.Debug("write failed", logging.FieldPath, it.name, logging.FieldError, err)
			outcome.Error = err
			return outcome
		}
		outcome.Written = path
	}

	return outcome
}

// writeResult stores result as indented JSON in the input's sidecar file.
// It returns the sidecar path if the file changed, or "" if it was current.
func writeResult(ctx context.Context, inputPath string, result entity.FormattedText) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result for %s: %w", inputPath, err)
	}
	data = append(data, '\n')

	path := fsutil.SidecarPath(inputPath)
	written, err := fsutil.WriteAtomicIfChanged(ctx, path, data, fsutil.DefaultFileMode)
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if !written {
		return "", nil
	}
	return path, nil
}
