package cmd

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-compass/internal/catalog"
)

func TestLoadCatalogWithoutDatasets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	cat, err := loadCatalog(context.Background(), &Config{}, zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, cat)

	assert.Equal(t, 1, logs.FilterMessage("datasets loaded").Len())

	rec, err := cat.Recommend(nil)
	assert.ErrorIs(t, err, catalog.ErrEmptyProfile)
	assert.Nil(t, rec)
}

func TestVersionString(t *testing.T) {
	got := versionString()

	assert.True(t, strings.HasPrefix(got, "career-compass version: "+version), got)
	assert.Contains(t, got, runtime.GOOS+"/"+runtime.GOARCH)
}
