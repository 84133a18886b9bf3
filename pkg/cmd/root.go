package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/pyimports/pkg/config"
	"github.com/siyuan-infoblox/pyimports/pkg/formatter"
	"github.com/siyuan-infoblox/pyimports/pkg/imports"
	"github.com/siyuan-infoblox/pyimports/pkg/logger"
	"github.com/siyuan-infoblox/pyimports/pkg/version"
)

const (
	UseDescription   = "pyimports [flags] PATH"
	ShortDescription = "Python import renderer - Aggregate and render import declarations for generated code"
	LongDescription  = `pyimports renders the import header of generated Python files.

Each import manifest (*.imports.yaml) lists the names a generated file needs.
Imports are deduplicated and rendered in groups:
1. Python standard library
2. External packages
3. Local (relative) modules

Namespaces and names are sorted, and an import longer than the maximum line
length is split over several lines.

PATH can be either a single manifest or a directory. When a directory is specified,
all manifests in the directory and subdirectories are processed recursively.`
)

type options struct {
	configPath  string
	inPlace     bool
	check       bool
	noColor     bool
	showVersion bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          UseDescription,
		Short:        ShortDescription,
		Long:         LongDescription,
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			// If version flag is set, we don't need a path argument
			if opts.showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a config file (default .pyimports.yaml in the current or home directory)")
	flags.Int("max-line-length", imports.DefaultMaxLineLength, "Maximum preferred line length before an import is split over several lines")
	flags.Bool("detect-stdlib", false, "Place known Python standard library namespaces in the stdlib group")
	flags.Bool("debug", false, "Enable debug logging on stderr")
	flags.BoolVar(&opts.inPlace, "in-place", false, "Write rendered imports to the output file of each manifest")
	flags.BoolVar(&opts.check, "check", false, "Fail if an output file differs from its rendered imports")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored diff output")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if opts.showVersion {
		fmt.Fprintf(cmd.OutOrStdout(), "pyimports version %s\n", version.Get().Version)
		return nil
	}

	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if opts.noColor {
		color.NoColor = true
	}

	log := logger.New(cmd.ErrOrStderr(), logger.Config{Debug: cfg.Debug})
	log.Debug("config.loaded",
		"max_line_length", cfg.MaxLineLength,
		"detect_stdlib", cfg.DetectStdlib,
	)

	path := args[0]
	g := formatter.New(formatter.FormatterConfig{
		FilePath:      path,
		MaxLineLength: cfg.MaxLineLength,
		DetectStdlib:  cfg.DetectStdlib,
		InPlace:       opts.inPlace,
		Check:         opts.check,
		Out:           cmd.OutOrStdout(),
		Logger:        log,
	})
	return g.ProcessPath(path)
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}
