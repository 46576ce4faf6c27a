// Package commands implements the gitrewind cobra subcommands.
package commands

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitrewind/pkg/compare"
	"github.com/Sumatoshi-tech/gitrewind/pkg/config"
	"github.com/Sumatoshi-tech/gitrewind/pkg/observability"
	"github.com/Sumatoshi-tech/gitrewind/pkg/version"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// App is the state every subcommand shares once the root command has loaded
// the configuration.
type App struct {
	ConfigPath string
	LogJSON    bool
	Verbose    bool

	Config *config.Config
	Logger *slog.Logger
}

// NewRootCommand creates the gitrewind root command with all subcommands.
func NewRootCommand() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "gitrewind",
		Short: "Year-in-review summaries from GitHub contribution data",
		Long: `gitrewind turns already-fetched GitHub contribution payloads into a
year-in-review summary and compares two years of the same user.

Commands:
  summarize  Build a summary from a year payload
  compare    Compare two years
  validate   Check a stored summary against the schema
  metrics    List the registered metrics
  serve      Run the HTTP service
  mcp        Run the MCP stdio server`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default .gitrewind.yaml in . or $HOME)")
	root.PersistentFlags().BoolVar(&app.LogJSON, "log-json", false, "emit JSON logs")
	root.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		NewSummarizeCommand(app),
		NewCompareCommand(app),
		NewValidateCommand(),
		NewMetricsCommand(app),
		NewServeCommand(app),
		NewMCPCommand(app),
		NewVersionCommand(),
	)

	return root
}

func (a *App) load(stderr io.Writer) error {
	cfg, err := config.LoadConfig(a.ConfigPath)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Logger = observability.NewLogger(stderr, a.observabilityConfig(observability.ModeCLI))

	return nil
}

// observabilityConfig maps the loaded configuration and global flags onto
// the telemetry settings of the given mode.
func (a *App) observabilityConfig(mode observability.AppMode) observability.Config {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version.Version
	cfg.Mode = mode
	cfg.LogLevel = observability.ParseLevel(a.Config.Logging.Level)
	cfg.LogJSON = a.LogJSON || strings.EqualFold(a.Config.Logging.Format, "json")
	cfg.OTLPEndpoint = a.Config.Telemetry.OTLPEndpoint
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(a.Config.Telemetry.OTLPHeaders)
	cfg.OTLPInsecure = a.Config.Telemetry.OTLPInsecure
	cfg.SampleRatio = a.Config.Telemetry.SampleRatio

	if a.Verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	return cfg
}

func (a *App) assembler(pageCap int) *yearstats.Assembler {
	if pageCap <= 0 {
		pageCap = a.Config.Analysis.RepositoryPageCap
	}

	return yearstats.NewAssembler(yearstats.Options{PageCap: pageCap})
}

func (a *App) engine() *compare.Engine {
	return compare.NewEngine(compare.Options{
		FullYearThreshold: a.Config.Analysis.FullYearThreshold,
		MinProjectionDays: a.Config.Analysis.MinProjectionDays,
	})
}
