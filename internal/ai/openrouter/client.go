// Package openrouter answers career questions through the OpenRouter chat
// completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/ai"
	"github.com/spigell/career-compass/internal/logger"
	"github.com/spigell/career-compass/internal/utils"
)

const (
	apiURL             = "https://openrouter.ai/api/v1"
	completionsPath    = "/chat/completions"
	providerName       = "openrouter"
	defaultModel       = "mistralai/mistral-7b-instruct"
	defaultTemperature = 0.7
	defaultMaxTokens   = 400
	defaultTimeout     = 40 * time.Second
	maxErrorBody       = 300
)

type Config struct {
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max-tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type Client struct {
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	logger      *zap.Logger
	HTTPClient  *http.Client
	APIURL      string
}

var _ ai.Assistant = (*Client)(nil)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func New(apiKey string, cfg Config, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openrouter api key is required")
	}

	if cfg.Model = strings.TrimSpace(cfg.Model); cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		apiKey:      apiKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger.WithProvider(log, providerName, cfg.Model),
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		APIURL:      apiURL,
	}, nil
}

func (c *Client) Reply(ctx context.Context, question string, cc *ai.Context) (string, error) {
	content, err := ai.UserMessage(question, cc)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: ai.SystemPrompt},
			{Role: "user", Content: content},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("openrouter chat request", zap.String("message_preview", utils.TruncateForLog(content, maxErrorBody)))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat completion: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion: bad status: %s: %s", resp.Status, utils.TruncateForLog(strings.TrimSpace(string(body)), maxErrorBody))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("openrouter returned no choices")
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("openrouter returned empty response")
	}
	return reply, nil
}
