package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/ai"
)

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask the career assistant a question",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := bootstrap()

		assistant, err := newAssistant(ctx, config.AI, logger)
		if err != nil {
			logger.Fatal("creating assistant", zap.Error(err))
		}
		if assistant == nil {
			logger.Fatal("assistant is disabled", zap.String("hint", "set ai.enabled to true"))
		}

		career, _ := cmd.Flags().GetString("career")
		recommendations, _ := cmd.Flags().GetStringSlice("recommendations")

		reply, err := assistant.Reply(ctx, strings.Join(args, " "), &ai.Context{
			Career:          career,
			Recommendations: recommendations,
		})
		if err != nil {
			logger.Fatal("asking assistant", zap.Error(err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), reply)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("career", "c", "", "predicted career to give the assistant context")
	chatCmd.Flags().StringSlice("recommendations", nil, "recommended roles to give the assistant context")
}
