package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/getmockd/mockroute/pkg/cli/internal/output"
	"github.com/getmockd/mockroute/pkg/config"
	"github.com/getmockd/mockroute/pkg/logging"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
	jsonOutput bool
}

// app carries the state of one CLI invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	flags  globalFlags
	cfg    *config.Config
	log    *slog.Logger
	colors *output.ColorScheme

	closers []io.Closer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		cfg:    config.Default(),
		log:    logging.Nop(),
		colors: output.NewColorScheme(true),
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mockroute",
		Short: "mockroute resolves HTTP requests against declarative mock manifests",
		Long: `mockroute loads route manifests (YAML, JSON or JSONC) and answers requests
from them: the most specific route whose conditions hold wins.

Settings are read from mockroute.yaml in the working directory, or from the
file named by --config or MOCKROUTE_CONFIG.`,
		SilenceUsage:      true,
		SilenceErrors:     true, // handled in Run
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Config file (default: discovered mockroute.yaml)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "Log format: text or json")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&a.flags.jsonOutput, "json", false, "Output command results in JSON format")

	root.AddCommand(
		a.matchCommand(),
		a.routesCommand(),
		a.validateCommand(),
		a.exportCommand(),
		a.versionCommand(),
	)
	return root
}

// setup loads settings and builds the logger before any command runs.
func (a *app) setup() error {
	cfg, err := config.LoadOrDefault(a.flags.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := logging.FromEnv(cfg.Logging())
	if a.flags.logLevel != "" {
		logCfg.Level = logging.ParseLevel(a.flags.logLevel)
	}
	if a.flags.logFormat != "" {
		logCfg.Format = logging.ParseFormat(a.flags.logFormat)
	}
	logCfg.Output = a.stderr
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, f)
		logCfg.Mirror = f
	}
	a.log = logging.New(logCfg)

	a.colors = output.NewColorScheme(a.flags.noColor || color.NoColor || !output.IsTerminal(a.stdout))
	if cfg.Path != "" {
		a.log.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

// Run executes the command line args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	defer a.close()

	root := a.rootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// Execute runs the CLI with the process arguments.
// This is called by main.main().
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
