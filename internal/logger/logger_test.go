package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), tt.input)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	log, err := New(Config{Level: "debug", OutputPaths: []string{"stdout"}})
	require.NoError(t, err)
	require.NotNil(t, log)

	log.Debug("debug message", String("key", "value"))
	log.Info("info message", Int("n", 1), Err(errors.New("attached")))

	child := log.With(String("component", "test"))
	require.NotNil(t, child)
	child.Warn("child message")
}

func TestNopDiscards(t *testing.T) {
	t.Parallel()

	log := Nop()
	log.Info("goes nowhere")
	log.Error("also nowhere", Bool("flag", true))
	assert.NoError(t, log.Sync())
}
