// Package cli provides the Cobra command structure for msgmark.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/msgmark/internal/logging"
	"github.com/yaklabco/msgmark/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Global flag names shared by subcommands.
const (
	flagConfig = "config"
	flagColor  = "color"
	flagDebug  = "debug"
)

// NewRootCommand creates the root msgmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "msgmark",
		Short: "Convert chat markup into plain text and formatting entities",
		Long: `msgmark converts messaging-style markup into plain text plus a list of
formatting entities, the shape chat APIs expect.

It understands **bold**, __italic__, ` + "`code`" + `, fenced code blocks with an
optional language, ~~strikethrough~~ and ||spoilers||. Unclosed or mismatched
markers stay in the text as written, and conversion never fails: on any
internal fault the input comes back unformatted.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
