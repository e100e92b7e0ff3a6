package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mentorsCmd = &cobra.Command{
	Use:   "mentors <career>",
	Short: "List mentors for a career",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := bootstrap()

		cat, err := loadCatalog(ctx, config, logger)
		if err != nil {
			logger.Fatal("loading catalog", zap.Error(err))
		}

		if err := printJSON(cmd.OutOrStdout(), cat.Mentors(strings.Join(args, " "))); err != nil {
			logger.Fatal("printing mentors", zap.Error(err))
		}
	},
}

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <career>",
	Args:  cobra.MinimumNArgs(1),
	Short: "Show the learning roadmap for a career",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := bootstrap()

		cat, err := loadCatalog(ctx, config, logger)
		if err != nil {
			logger.Fatal("loading catalog", zap.Error(err))
		}

		career := strings.Join(args, " ")
		steps, ok := cat.StoredRoadmap(career)
		if !ok {
			logger.Info("no stored roadmap, showing the default one", zap.String("career", career))
			steps = cat.Roadmap(career)
		}

		if err := printJSON(cmd.OutOrStdout(), steps); err != nil {
			logger.Fatal("printing roadmap", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(mentorsCmd)
	rootCmd.AddCommand(roadmapCmd)
}
