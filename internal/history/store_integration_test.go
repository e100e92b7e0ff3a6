//go:build integration

package history

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	store, err := Connect(ctx, url)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.EnsureSchema(ctx))

	record := NewRecord("Ann", "data scientist", []string{"data scientist", "data analyst"}, "classified")
	require.NoError(t, store.Save(ctx, record))

	recent, err := store.Recent(ctx, 50)
	require.NoError(t, err)

	var found bool
	for _, r := range recent {
		if r.ID == record.ID {
			found = true
			assert.Equal(t, record.Career, r.Career)
			assert.Equal(t, record.Recommendations, r.Recommendations)
		}
	}
	assert.True(t, found, "saved record not returned")
}
