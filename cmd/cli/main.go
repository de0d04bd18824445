package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkachan/shiftscout/cmd/cli/commands"
	"github.com/dkachan/shiftscout/internal/config"
	"github.com/dkachan/shiftscout/pkg/bookingcache"
	"github.com/dkachan/shiftscout/pkg/clients/scheduleclient"
	"github.com/dkachan/shiftscout/pkg/core/matcher"
	"github.com/dkachan/shiftscout/pkg/core/parser"
	"github.com/dkachan/shiftscout/pkg/core/stopwords"
	"github.com/dkachan/shiftscout/pkg/utils/logging"
)

var (
	env     string
	verbose bool

	// populated by initApp before any command runs
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftscout",
		Short: "Shiftscout CLI - Parse shift requests and match them to slots",
		Long:  `A CLI tool for interpreting free-form shift-request messages and matching them against bookable slots from the scheduling backend.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log parse heuristics to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ParseMessageCmd(app))
	rootCmd.AddCommand(commands.MatchMessageCmd(app))
	rootCmd.AddCommand(commands.BookSlotCmd(app))
	rootCmd.AddCommand(commands.UpcomingSlotsCmd(app))
	rootCmd.AddCommand(commands.RefreshStopwordsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, the schedule client and the engine
func initApp() error {
	logger, err := logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully", zap.String("api_base_url", cfg.APIBaseURL))

	schedule := scheduleclient.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout(), logger)
	stopWords := stopwords.NewIndex(schedule, logger, cfg.StopWordRefreshInterval())

	app.Cfg = cfg
	app.Schedule = schedule
	app.StopWords = stopWords
	app.Parser = parser.New(stopWords, logger)
	app.Matcher = matcher.New(cfg.MatcherWeights(), logger)
	app.Bookings = bookingcache.New(bookingcache.DefaultTTL)
	app.Logger = logger
	app.Ctx = context.Background()

	return nil
}
