package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/radish-miyazaki/tailr/internal/config"
	"github.com/radish-miyazaki/tailr/internal/tail"
	"github.com/radish-miyazaki/tailr/internal/take"
	"github.com/radish-miyazaki/tailr/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// takeFlag is a custom pflag.Value that runs the count-spec parser at
// flag-parse time, so an illegal count aborts before any file is opened.
type takeFlag struct {
	field string
	val   *take.Value
}

func (f *takeFlag) String() string { return f.val.String() }
func (f *takeFlag) Type() string   { return "string" }

func (f *takeFlag) Set(s string) error {
	v, err := take.Parse(s, f.field)
	if err != nil {
		return err
	}
	*f.val = v
	return nil
}

func run() int {
	var (
		linesVal    = take.Num(-10)
		bytesVal    take.Value
		quiet       bool
		verbose     bool
		logFile     string
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "tailr [flags] <file>...",
		Short: "Print the last part of one or more files",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "tailr %s\n", version)
				return nil
			}

			// Configure logging first so anything below, the config
			// load included, goes through the installed handler.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			if err := applyConfigDefaults(cmd, cfg.Defaults, &linesVal, &quiet); err != nil {
				return err
			}

			// Headers are styled only on a terminal, and only if the
			// config does not opt out.
			if !ui.IsTTY(os.Stdout.Fd()) || (cfg.Defaults.Color != nil && !*cfg.Defaults.Color) {
				ui.DisableColor()
			}

			opts := tail.Options{
				Files:  args,
				Lines:  linesVal,
				Quiet:  quiet,
				Header: ui.Header,
				Out:    os.Stdout,
				ErrOut: os.Stderr,
			}
			if cmd.Flags().Changed("bytes") {
				opts.Bytes = &bytesVal
			}

			slog.Debug("starting run",
				"files", args,
				"lines", linesVal.String(),
				"byte_mode", opts.Bytes != nil,
				"quiet", quiet,
			)

			return tail.Run(opts)
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().VarP(&takeFlag{field: "byte", val: &bytesVal}, "bytes", "c", "number of bytes")
	rootCmd.Flags().VarP(&takeFlag{field: "line", val: &linesVal}, "lines", "n", "number of lines")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-file headers")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.MarkFlagsMutuallyExclusive("bytes", "lines")

	// The registered line default is Num(-10); show it the way tail
	// spells it, and leave bytes blank since it has no default.
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case "lines":
			f.DefValue = "10"
		case "bytes":
			f.DefValue = ""
		}
	})

	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not
// explicitly set on the CLI. An illegal count in the config surfaces the
// same way as one on the command line.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	lines *take.Value,
	quiet *bool,
) error {
	if !cmd.Flags().Changed("lines") && defaults.Lines != nil {
		v, err := take.Parse(*defaults.Lines, "line")
		if err != nil {
			return err
		}
		*lines = v
	}
	if !cmd.Flags().Changed("quiet") && defaults.Quiet != nil {
		*quiet = *defaults.Quiet
	}
	return nil
}
