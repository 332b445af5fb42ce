package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-master/internal/config"
	"github.com/Tiliavir/time-master/internal/logging"
	"github.com/Tiliavir/time-master/internal/store"
	"github.com/Tiliavir/time-master/internal/timecalc"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tm",
	Short: "Time Master – log what you spent your day on",
	Long: `tm records activity intervals with a title and a tag and lets you
browse them by day, by tag or by free-text search.

Entries live in memory only: every invocation starts from the example
entries, and 'tm browse' keeps what you add for the length of the session.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.tm/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(datesCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(totalCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig runs before every command. A broken config file is reported but
// does not stop the command; the defaults are used instead.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger = logging.New(cmd.ErrOrStderr(), level)

	if err != nil {
		logger.Warn("using default configuration", "err", err)
	}
	return nil
}

// newStore builds the session's log store from the loaded configuration.
// config.Load has already rejected an unknown timezone.
func newStore() *store.Store {
	loc, _ := cfg.Location()
	opts := []store.Option{
		store.WithClock(timecalc.SystemClock{Location: loc}),
		store.WithTags(cfg.Tags),
		store.WithPlaceholders(cfg.DefaultTitle, cfg.DefaultTag),
		store.WithOtherTag(cfg.OtherTag),
		store.WithLogger(logger),
	}
	if cfg.SeedEnabled() {
		opts = append(opts, store.WithSeed())
	}
	return store.New(opts...)
}
