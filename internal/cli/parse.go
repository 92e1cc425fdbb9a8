package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/msgmark/internal/logging"
	"github.com/yaklabco/msgmark/pkg/config"
	"github.com/yaklabco/msgmark/pkg/fsutil"
	"github.com/yaklabco/msgmark/pkg/reporter"
	"github.com/yaklabco/msgmark/pkg/runner"
)

// Input names for in-memory inputs.
const (
	stdinName = "<stdin>"
	textName  = "<text>"
	stdinArg  = "-"
)

type parseFlags struct {
	format            string
	units             string
	normalizeLanguage bool
	inferLanguage     bool
	ignore            []string
	extensions        []string
	text              []string
	followSymlinks    bool
	summary           bool
	maxSize           int64
}

func newParseCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Convert markup into text and entities",
		Long:  parseLongDescription + "\n\n" + environmentHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, cfg, flags)
		},
	}

	addParseFlags(cmd, cfg, flags)

	return cmd
}

const parseLongDescription = `Convert messaging markup into plain text and formatting entities.

Inputs come from --text, from the named files and directories, or from stdin
when it is piped. Directories are walked for files with a configured
extension (.txt, .md and .msg by default).

Examples:
  msgmark parse --text 'Hello **world**'     # Convert a literal string
  echo '||spoiler||' | msgmark parse         # Convert stdin
  msgmark parse chats/                       # Convert every file under chats/
  msgmark parse --units utf16 --format json  # Offsets for messaging APIs
  msgmark parse --write chats/               # Store <file>.entities.json sidecars`

func addParseFlags(cmd *cobra.Command, cfg *config.Config, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "",
		withEnv("output format: text, json, yaml, msgpack (default text)", "format"))
	cmd.Flags().StringVar(&flags.units, "units", "",
		withEnv("offset units: bytes, runes, utf16 (default bytes)", "units"))
	cmd.Flags().BoolVar(&flags.normalizeLanguage, "normalize-language", false,
		"map fence tags such as ts or py to canonical language names")
	cmd.Flags().BoolVar(&flags.inferLanguage, "infer-language", false, "guess a language for untagged fences")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, withEnv("number of parallel workers (0 = auto)", "jobs"))
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to convert when walking directories")
	cmd.Flags().BoolVar(&cfg.Compact, "compact", false, "compact output: single-line JSON, no entity tables")
	cmd.Flags().BoolVar(&cfg.Write, "write", false, "write <file>.entities.json next to each input file")
	cmd.Flags().StringArrayVarP(&flags.text, "text", "t", nil, "convert this text instead of files (repeatable)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symlinked directories")
	cmd.Flags().BoolVar(&flags.summary, "summary", true, "print a summary line after text output")
	cmd.Flags().Int64Var(&flags.maxSize, "max-size", runner.DefaultMaxFileSize, "skip files larger than this many bytes")
}

func runParse(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *parseFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg.Units = flags.units
	cliCfg.Format = config.OutputFormat(flags.format)
	cliCfg.Ignore = flags.ignore
	cliCfg.Extensions = flags.extensions
	cliCfg.NormalizeLanguage = optionalBool(cmd, "normalize-language", flags.normalizeLanguage)
	cliCfg.InferLanguage = optionalBool(cmd, "infer-language", flags.inferLanguage)

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.cfg

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     loaded.workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		MaxFileSize:    flags.maxSize,
		Write:          cfg.Write,
	}

	parseRunner := runner.New(loaded.newParser())

	var result *runner.Result
	inputs, err := memoryInputs(cmd, args, flags.text)
	switch {
	case err != nil:
		return err
	case inputs != nil:
		if cfg.Write {
			logger.Warn("--write applies to files only; ignored for in-memory input")
		}
		result, err = parseRunner.RunInputs(ctx, inputs, runOpts)
	default:
		logger.Debug("starting parse run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
		)
		result, err = parseRunner.Run(ctx, runOpts)
	}
	if err != nil {
		return errors.Join(errors.New("parse run failed"), err)
	}

	logger.Debug("parse run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithEntities, result.Stats.FilesWithEntities,
		logging.FieldEntitiesTotal, result.Stats.EntitiesTotal,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		Unit:        loaded.unit,
		ShowText:    true,
		ShowSummary: flags.summary && len(result.Files) > 1,
		Compact:     cfg.Compact,
		WorkingDir:  loaded.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		for _, file := range result.Files {
			if file.Error != nil {
				logger.Debug("input failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
			}
		}
		return ErrFilesFailed
	}

	return nil
}

// memoryInputs returns the in-memory inputs for this run, or nil when the
// run should convert files. Stdin is read when no paths are given and it is
// not a terminal, or when the only path is "-".
func memoryInputs(cmd *cobra.Command, args, texts []string) ([]runner.Input, error) {
	if len(texts) > 0 {
		if len(args) > 0 {
			return nil, fmt.Errorf("%w: --text cannot be combined with paths", ErrNoInput)
		}
		inputs := make([]runner.Input, len(texts))
		for i, text := range texts {
			inputs[i] = runner.Input{Name: textName, Text: text}
		}
		return inputs, nil
	}

	if len(args) > 1 && slices.Contains(args, stdinArg) {
		return nil, fmt.Errorf("%w: %q cannot be combined with other paths", ErrNoInput, stdinArg)
	}
	if len(args) > 0 && args[0] != stdinArg {
		return nil, nil
	}

	stdin := cmd.InOrStdin()
	if len(args) == 0 && isTerminal(stdin) {
		return nil, ErrNoInput
	}

	content, err := io.ReadAll(io.LimitReader(stdin, runner.DefaultMaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if int64(len(content)) > runner.DefaultMaxFileSize {
		return nil, fmt.Errorf("read stdin: %w", fsutil.ErrTooLarge)
	}

	return []runner.Input{{Name: stdinName, Text: string(content)}}, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
