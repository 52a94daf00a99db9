package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBaseEnv sets the full set of environment variables a working
// deployment would carry. Individual tests override or clear entries.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LANGUAGE_MODEL", "test/model")
	t.Setenv("SYSTEM_PROMPT", "You are a travel guide.")
	t.Setenv("ADMIN_USER_IDS", "123, 456")
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromEnv(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "123456:test-token", cfg.Telegram.Token)
	assert.Equal(t, "openrouter", cfg.AI.Backend)
	assert.Equal(t, "sk-or-test", cfg.AI.Token)
	assert.Equal(t, "test/model", cfg.AI.Model)
	assert.Equal(t, "You are a travel guide.", cfg.AI.Instruction)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.AI.BaseURL)
	assert.Equal(t, "https://api.bigdatacloud.net", cfg.Geocode.BaseURL)

	assert.Equal(t, []int64{123, 456}, cfg.Telegram.AdminIDs)
	assert.True(t, cfg.Telegram.IsAdmin(123))
	assert.True(t, cfg.Telegram.IsAdmin(456))
	assert.False(t, cfg.Telegram.IsAdmin(789))
}

func TestLoadConfigMissingTelegramToken(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfigMissingGatewayKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfigPromptsFileFallback(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SYSTEM_PROMPT", "")

	promptsPath := writeTempFile(t, "prompts.yaml", "system_prompt: Prompt from file\n")
	configPath := writeTempFile(t, "config.yaml", "ai:\n  prompts_file: "+promptsPath+"\n")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "Prompt from file", cfg.AI.Instruction)
}

func TestLoadConfigEmptySystemPromptFatal(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SYSTEM_PROMPT", "")

	promptsPath := writeTempFile(t, "prompts.yaml", "system_prompt: \"\"\n")
	configPath := writeTempFile(t, "config.yaml", "ai:\n  prompts_file: "+promptsPath+"\n")

	_, err := LoadConfig(configPath)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfigMissingPromptsFileFatal(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SYSTEM_PROMPT", "")

	configPath := writeTempFile(t, "config.yaml",
		"ai:\n  prompts_file: "+filepath.Join(t.TempDir(), "nope.yaml")+"\n")

	_, err := LoadConfig(configPath)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfigInvalidAdminIDs(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_USER_IDS", "123,abc")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestParseAdminIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []int64
		wantErr  bool
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single id", input: "42", expected: []int64{42}},
		{name: "spaces and trailing comma", input: " 1 , 2 ,", expected: []int64{1, 2}},
		{name: "not a number", input: "1,x", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ids, err := parseAdminIDs(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ids)
		})
	}
}
