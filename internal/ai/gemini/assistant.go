// Package gemini answers career questions with Google Gemini.
package gemini

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/ai"
	"github.com/spigell/career-compass/internal/logger"
	"github.com/spigell/career-compass/internal/utils"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

type Assistant struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Assistant = (*Assistant)(nil)

func NewAssistant(generator contentGenerator, log *zap.Logger, maxLogLength int) *Assistant {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Assistant{
		generator: generator,
		logger:    logger.WithProvider(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (a *Assistant) Reply(ctx context.Context, question string, c *ai.Context) (string, error) {
	message, err := ai.UserMessage(question, c)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini chat request",
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, a.maxLogLen)),
	)

	reply, err := a.generator.GenerateContent(ctx, ai.SystemPrompt, message)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini chat response",
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", utils.TruncateForLog(reply, a.maxLogLen)),
	)

	return reply, nil
}
