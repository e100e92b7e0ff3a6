package history

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewRecord(t *testing.T) {
	recs := []string{"nurse", "midwife"}
	r := NewRecord("  ", "nurse", recs, "classified")

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "User", r.UserName)
	assert.Equal(t, "nurse", r.Career)
	assert.Equal(t, recs, r.Recommendations)
	assert.WithinDuration(t, time.Now().UTC(), r.CreatedAt, time.Minute)

	recs[0] = "changed"
	assert.Equal(t, "nurse", r.Recommendations[0])

	assert.NotEqual(t, r.ID, NewRecord("Ann", "nurse", nil, "classified").ID)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, ClampLimit(0))
	assert.Equal(t, defaultLimit, ClampLimit(-3))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, maxLimit, ClampLimit(maxLimit+1))
}
