package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/msgmark/internal/configloader"
	"github.com/yaklabco/msgmark/internal/logging"
	"github.com/yaklabco/msgmark/pkg/config"
	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/markup"
)

// loadedConfig is the resolved configuration for one command run.
type loadedConfig struct {
	cfg     *config.Config
	unit    entity.Unit
	workDir string
}

// commandContext returns the command's context, or Background before Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig merges every configuration source with the flags in cliCfg.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	logger := logging.FromContext(cmd.Context())

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config

	// Validate has already accepted the name.
	unit, err := entity.ParseUnit(cfg.Units)
	if err != nil {
		return nil, fmt.Errorf("units: %w", err)
	}

	logger.Debug("configuration loaded",
		logging.FieldUnits, cfg.Units,
		logging.FieldFormat, cfg.Format,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldWrite, cfg.Write,
	)

	return &loadedConfig{cfg: cfg, unit: unit, workDir: workDir}, nil
}

// newParser builds the markup parser the configuration describes.
func (l *loadedConfig) newParser() *markup.Parser {
	return markup.New(markup.Options{
		Unit:              l.unit,
		NormalizeLanguage: l.cfg.ShouldNormalizeLanguage(),
		InferLanguage:     l.cfg.ShouldInferLanguage(),
	})
}

// colorMode reads the global --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		return "auto"
	}
	return mode
}

// optionalBool returns a pointer to the flag's value if it was set, so an
// unset flag leaves lower-precedence sources in charge.
func optionalBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return config.Bool(value)
}

// environmentHelp lists the environment variables the config loader reads.
func environmentHelp() string {
	vars := configloader.ListEnvVars()

	var sb strings.Builder
	sb.WriteString("Environment:")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&sb, "\n  %-28s %s", name, vars[name])
	}
	return sb.String()
}

// withEnv appends the environment variable for a config field to a flag
// description.
func withEnv(description, field string) string {
	if name := configloader.GetEnvVarName(field); name != "" {
		return description + " [$" + name + "]"
	}
	return description
}
