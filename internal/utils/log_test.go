package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "non-positive limit", input: "data scientist", limit: -1, expect: ""},
		{name: "fits", input: "nurse", limit: 5, expect: "nurse"},
		{name: "cut", input: "machine learning engineer", limit: 7, expect: "machine..."},
		{name: "multibyte runes", input: "🎯 Learn fundamentals", limit: 2, expect: "🎯 ..."},
		{name: "trimmed first", input: "\n python \t", limit: 6, expect: "python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestJoinNonEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		expect string
	}{
		{name: "nil", values: nil, expect: ""},
		{name: "all blank", values: []string{" ", ""}, expect: ""},
		{name: "trims and skips", values: []string{" data analyst ", "", "  ", "nurse"}, expect: "data analyst, nurse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := JoinNonEmpty(tt.values, ", "); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
