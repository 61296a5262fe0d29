package logger

import (
	"os"
	"path/filepath"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterFor(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &logrus.JSONFormatter{}, formatterFor("production"))
	assert.IsType(t, &logrus.JSONFormatter{}, formatterFor("Staging"))
	assert.IsType(t, &logrus.TextFormatter{}, formatterFor("development"))
	assert.IsType(t, &logrus.TextFormatter{}, formatterFor(""))
}

func TestInitWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")

	closer, err := Init(&config.AppConfig{LogLevel: "debug", Environment: "development", LogFile: path})
	require.NoError(t, err)
	t.Cleanup(func() { Log.SetOutput(os.Stdout) })

	Log.Info("Bot started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bot started")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
}

func TestInitFallsBackToInfoOnBadLevel(t *testing.T) {
	closer, err := Init(&config.AppConfig{LogLevel: "chatty"})
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestInitReportsUnwritableLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "bot.log")

	closer, err := Init(&config.AppConfig{LogLevel: "info", LogFile: path})
	assert.Error(t, err)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
}

func TestInitKeepsLevelWhenLogFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "bot.log")

	_, err := Init(&config.AppConfig{LogLevel: "warn", LogFile: path})
	assert.Error(t, err)
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
}
