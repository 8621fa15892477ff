package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no config file or .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("UNSPLASH_ACCESS_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "token", cfg.TelegramAPIToken)
	assert.Equal(t, "key", cfg.Images.AccessKey)
	assert.Equal(t, "https://opentdb.com/api.php", cfg.Trivia.BaseURL)
	assert.Equal(t, "https://api.unsplash.com/search/photos", cfg.Images.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 10, cfg.Game.DefaultQuestions)
	assert.Equal(t, "per_question", cfg.Game.AnswerOrder)
	assert.True(t, cfg.Game.StrictResponseCode)
	assert.Equal(t, 10, cfg.DB.MaxConnections)
	assert.False(t, cfg.DB.Enabled())

	_, err = cfg.DB.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoad_MissingToken(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://trivia@localhost/trivia")
	t.Setenv("APP_ENV", "production")
	t.Setenv("GAME_DEFAULT_QUESTIONS", "20")
	t.Setenv("GAME_ANSWER_ORDER", "per_access")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 20, cfg.Game.DefaultQuestions)
	assert.Equal(t, "per_access", cfg.Game.AnswerOrder)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://trivia@localhost/trivia", dsn)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	yaml := []byte("game:\n  default_questions: 25\n  strict_response_code: false\ntrivia:\n  base_url: http://localhost:9000/api.php\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), yaml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Game.DefaultQuestions)
	assert.False(t, cfg.Game.StrictResponseCode)
	assert.Equal(t, "http://localhost:9000/api.php", cfg.Trivia.BaseURL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TELEGRAM_API_TOKEN", "")
	require.NoError(t, os.Unsetenv("TELEGRAM_API_TOKEN"))
	t.Setenv("UNSPLASH_ACCESS_KEY", "")
	require.NoError(t, os.Unsetenv("UNSPLASH_ACCESS_KEY"))

	env := []byte("TELEGRAM_API_TOKEN=from-dotenv\nUNSPLASH_ACCESS_KEY=dotenv-key\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), env, 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.TelegramAPIToken)
	assert.Equal(t, "dotenv-key", cfg.Images.AccessKey)

	// godotenv sets process variables directly; drop them for later tests.
	require.NoError(t, os.Unsetenv("TELEGRAM_API_TOKEN"))
	require.NoError(t, os.Unsetenv("UNSPLASH_ACCESS_KEY"))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "too few questions", key: "GAME_DEFAULT_QUESTIONS", value: "4"},
		{name: "too many questions", key: "GAME_DEFAULT_QUESTIONS", value: "31"},
		{name: "unknown answer order", key: "GAME_ANSWER_ORDER", value: "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv("TELEGRAM_API_TOKEN", "token")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
