package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gubarz/docco/internal/config"
	"github.com/gubarz/docco/internal/document"
	"github.com/gubarz/docco/internal/generator"
	"github.com/gubarz/docco/internal/output"
	"github.com/gubarz/docco/internal/ui"
)

var version = "0.1.0"

var previewCmd = &cobra.Command{
	Use:   "preview [path]",
	Short: "Browse extracted sections interactively",
	Long: `Opens an interactive viewer over the extracted sections.

Move between sections with up/down, scroll with pgup/pgdown,
press w to write the document and q to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

var rootCmd = &cobra.Command{
	Use:   "docco [path]",
	Short: "Build a README from documentation blocks in source files",
	Long: `Scans a source tree for delimited documentation blocks, groups them
by their first markdown header and writes the sections to one document.

Block delimiters are configured per file extension in docco.json:

  {
    "index": ["# Intro", "## Usage"],
    "formats": [
      {"extension": ".rs", "start": "/**", "end": "*/", "delimiter": "*"}
    ]
  }`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./docco.json)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file (default README.md)")
	rootCmd.PersistentFlags().String("root", "", "Source tree to scan (default .)")
	rootCmd.PersistentFlags().Bool("print", false, "Print the document instead of writing it")
	rootCmd.PersistentFlags().Bool("copy", false, "Copy the document to the clipboard")
	rootCmd.PersistentFlags().Bool("toc", false, "Prepend a table of contents")
	rootCmd.PersistentFlags().Bool("strip-header", false, "Remove # markers from section headers")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every file and block")
}

// loadConfig reads the descriptor and applies command line overrides
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		if path == "" {
			path = "docco.json"
		}
		return nil, output.NewConfigError(path, err)
	}

	if r, _ := cmd.Flags().GetString("root"); r != "" {
		cfg.Root = r
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		cfg.Output = o
	}

	// Handle output mode flags
	if p, _ := cmd.Flags().GetBool("print"); p {
		cfg.SetOutput(config.ModePrint)
	} else if c, _ := cmd.Flags().GetBool("copy"); c {
		cfg.SetOutput(config.ModeCopy)
	}

	if toc, _ := cmd.Flags().GetBool("toc"); toc {
		cfg.TOC = true
	}
	if strip, _ := cmd.Flags().GetBool("strip-header"); strip {
		cfg.StripHeader = true
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Mode == config.ModePreview {
		return preview(cfg)
	}

	logger := newLogger(cfg)
	result, err := generator.NewGenerator(cfg, logger).WithStdout(cmd.OutOrStdout()).Run()
	if err != nil {
		return err
	}

	if cfg.Mode == config.ModeWrite {
		summary := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).
			Render(fmt.Sprintf("Wrote %d sections from %d files to %s", len(result.Sections), result.Sources, cfg.Output))
		fmt.Fprintln(cmd.ErrOrStderr(), summary)
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return preview(cfg)
}

func preview(cfg *config.Config) error {
	logger := newLogger(cfg)
	result, err := generator.NewGenerator(cfg, logger).Build()
	if err != nil {
		return err
	}

	sink := document.NewFileSink(cfg.Output, logger)
	return ui.Run(cfg, result.Sections, result.Lines, sink.Write)
}

func main() {
	err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version))
	os.Exit(output.GetExitCode(err))
}
