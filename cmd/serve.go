package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address (default is 127.0.0.1:5000)")
	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := bootstrap()
	defer logger.Sync()

	logger.Info("starting the career-compass api", zap.String("version", version))

	cat, err := loadCatalog(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}

	deps := server.Deps{
		Catalog: cat,
		Logger:  logger,
	}

	jobsClient, err := newJobsClient(config, logger)
	if err != nil {
		logger.Warn("job search is disabled", zap.Error(err))
	}
	if jobsClient != nil {
		deps.Jobs = jobsClient
	}

	assistant, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("assistant is disabled", zap.Error(err))
	}
	if assistant != nil {
		deps.Assistant = assistant
	}

	store, err := openHistory(ctx, config, logger)
	if err != nil {
		logger.Warn("history is disabled", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
		deps.History = store
	}

	srv, err := server.New(config.Server, deps)
	if err != nil {
		logger.Fatal("creating server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}

	logger.Info("server stopped")
}
