package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs <career>",
	Short: "Search current job openings for a career",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := bootstrap()

		client, err := newJobsClient(config, logger)
		if err != nil {
			logger.Fatal("creating jobs client", zap.Error(err))
		}
		if client == nil {
			logger.Fatal("job search is disabled", zap.String("hint", "set jobs.enabled to true"))
		}

		keywords := strings.Join(args, " ")
		found, err := client.Search(ctx, keywords)
		if err != nil {
			logger.Fatal("searching jobs", zap.Error(err), zap.String("keywords", keywords))
		}

		logger.Info("found jobs", zap.Int("count", found.Len()), zap.Int("total", found.Total))

		if err := printJSON(cmd.OutOrStdout(), found.List()); err != nil {
			logger.Fatal("printing jobs", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
