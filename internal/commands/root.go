// Package commands wires the minca CLI: every subcommand talks to the
// ledger API through the shared client, service and form controllers.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/jsvantner/minca/internal/clients/ledgerapi"
	"github.com/jsvantner/minca/internal/common"
	"github.com/jsvantner/minca/internal/services/ledger"
	"github.com/jsvantner/minca/internal/session"
)

// App holds the wired dependencies shared by all subcommands. It is
// populated once in the root command's PersistentPreRunE.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Session *session.FileStore
	Client  *ledgerapi.Client
	Ledger  *ledger.Service
	Sorter  *ledger.Sorter
}

func (a *App) setup(configPath, logLevel string) error {
	paths := []string{"minca.toml"}
	if configPath != "" {
		paths = []string{configPath}
	}

	cfg, err := common.LoadConfig(paths...)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	a.Config = cfg
	a.Logger = common.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	a.Session = session.NewFileStore(cfg.Session.Path)
	a.Client = ledgerapi.NewClient(a.Session,
		ledgerapi.WithBaseURL(cfg.Server.BaseURL),
		ledgerapi.WithLogger(a.Logger),
		ledgerapi.WithRateLimit(cfg.Server.RateLimit),
		ledgerapi.WithTimeout(cfg.Server.GetTimeout()),
	)
	a.Ledger = ledger.NewService(a.Client, ledger.NewStore(), a.Logger)
	a.Ledger.SetTimeout(cfg.Server.GetTimeout())
	a.Sorter = ledger.NewSorter(cfg.Locale)
	return nil
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	app := &App{}
	var configPath string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "minca",
		Short:   "Personal finance ledger client",
		Version: common.GetFullVersion(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(configPath, logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(newLoginCommand(app))
	rootCmd.AddCommand(newSignupCommand(app))
	rootCmd.AddCommand(newLogoutCommand(app))
	rootCmd.AddCommand(newStatusCommand(app))
	rootCmd.AddCommand(newTxCommand(app))
	rootCmd.AddCommand(newCategoryCommand(app))
	rootCmd.AddCommand(newExportCommand(app))
	rootCmd.AddCommand(newImportCommand(app))
	rootCmd.AddCommand(newChartCommand(app))

	return rootCmd
}
