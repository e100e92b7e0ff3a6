package ai

import (
	"errors"
	"testing"
)

func TestContextString(t *testing.T) {
	tests := []struct {
		name string
		ctx  *Context
		want string
	}{
		{name: "nil", ctx: nil, want: "No additional context."},
		{name: "empty", ctx: &Context{Career: "  "}, want: "No additional context."},
		{
			name: "full",
			ctx: &Context{
				Career:          "data scientist",
				Recommendations: []string{"data scientist", "data analyst"},
				Mentors:         []string{"Asha", "Dara"},
				Jobs:            []string{"ML Engineer"},
			},
			want: "The user's predicted career is: data scientist. " +
				"Top recommended roles: data scientist, data analyst. " +
				"Available mentors: Asha, Dara. " +
				"Recent job openings: ML Engineer.",
		},
		{name: "jobs only", ctx: &Context{Jobs: []string{"Nurse"}}, want: "Recent job openings: Nurse."},
		{
			name: "blank entries skipped",
			ctx:  &Context{Recommendations: []string{" ", "nurse", ""}, Mentors: []string{""}},
			want: "Top recommended roles: nurse.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	got, err := UserMessage("  How do I start? ", &Context{Career: "nurse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "The user's predicted career is: nurse.\n\nUser's question: How do I start?"
	if got != want {
		t.Fatalf("UserMessage() = %q, want %q", got, want)
	}

	if _, err := UserMessage(" ", nil); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}
