package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildConfigLevel(t *testing.T) {
	cfg := buildConfig("debug")
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
	assert.Equal(t, "json", cfg.Encoding)

	cfg = buildConfig("nonsense")
	assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
}

func TestBuildConfigConsole(t *testing.T) {
	t.Setenv("LOG_FORMAT", "console")
	assert.Equal(t, "console", buildConfig("info").Encoding)
}

func TestNamed(t *testing.T) {
	l, err := New("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	assert.NotNil(t, Named("reminder"))
}
