package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", config.Server.Address)
	assert.Equal(t, "data/careers.csv", config.Datasets.Careers)

	require.NotNil(t, config.Jobs)
	assert.True(t, config.Jobs.Enabled)
	assert.Equal(t, "India", config.Jobs.Location)
	assert.Equal(t, 5, config.Jobs.Limit)
	assert.Equal(t, 15*time.Second, config.Jobs.Timeout)

	require.NotNil(t, config.AI)
	assert.Equal(t, "openrouter", config.AI.Provider)
	require.NotNil(t, config.AI.OpenRouter)
	assert.Equal(t, 400, config.AI.OpenRouter.MaxTokens)
	assert.Equal(t, 40*time.Second, config.AI.OpenRouter.Timeout)
	require.NotNil(t, config.AI.Gemini)
	assert.Equal(t, 3, config.AI.Gemini.MaxRetries)
}

func TestGetConfigValidation(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{key: "ai.provider", value: "llama"},
		{key: "server.address", value: "not an address"},
		{key: "history.database-url", value: "::"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			previous := viper.Get(tt.key)
			viper.Set(tt.key, tt.value)
			t.Cleanup(func() { viper.Set(tt.key, previous) })

			_, err := getConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestReadProfile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
name: Asha
technicalSkills:
  - python
  - skill: sql
currentRole: analyst
`), 0o600))

	p, err := readProfile(yamlPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, "analyst", p.CurrentRole)
	require.Len(t, p.TechnicalSkills, 2)
	assert.Equal(t, "sql", p.TechnicalSkills[1].Name)

	p, err = readProfile("-", bytes.NewBufferString(`{"current_role": "nurse", "softSkills": ["empathy"]}`))
	require.NoError(t, err)
	assert.Equal(t, "nurse", p.CurrentRole)
	require.Len(t, p.SoftSkills, 1)

	jsonPath := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name":`), 0o600))
	_, err = readProfile(jsonPath, nil)
	require.Error(t, err)

	_, err = readProfile(filepath.Join(dir, "missing.json"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}
