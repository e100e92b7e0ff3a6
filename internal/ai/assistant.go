// Package ai defines the career assistant contract shared by chat providers.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/career-compass/internal/utils"
)

// SystemPrompt is the system instruction sent with every question.
const SystemPrompt = "You are an AI career assistant offering concise and motivational advice."

const noContext = "No additional context."

// ErrEmptyMessage is returned for blank questions.
var ErrEmptyMessage = errors.New("message is required")

// Context is what the assistant knows about the user. Every field is optional.
type Context struct {
	Career          string
	Recommendations []string
	Mentors         []string
	Jobs            []string
}

// String renders the context as sentences, or a placeholder when empty.
func (c *Context) String() string {
	if c == nil {
		return noContext
	}

	var parts []string
	if career := strings.TrimSpace(c.Career); career != "" {
		parts = append(parts, fmt.Sprintf("The user's predicted career is: %s.", career))
	}
	if roles := utils.JoinNonEmpty(c.Recommendations, ", "); roles != "" {
		parts = append(parts, "Top recommended roles: "+roles+".")
	}
	if mentors := utils.JoinNonEmpty(c.Mentors, ", "); mentors != "" {
		parts = append(parts, "Available mentors: "+mentors+".")
	}
	if jobs := utils.JoinNonEmpty(c.Jobs, ", "); jobs != "" {
		parts = append(parts, "Recent job openings: "+jobs+".")
	}

	if len(parts) == 0 {
		return noContext
	}
	return strings.Join(parts, " ")
}

// UserMessage builds the user turn for question.
func UserMessage(question string, c *Context) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyMessage
	}
	return fmt.Sprintf("%s\n\nUser's question: %s", c.String(), question), nil
}

// Assistant answers career questions.
type Assistant interface {
	Reply(ctx context.Context, question string, c *Context) (string, error)
}
