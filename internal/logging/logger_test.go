package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/2beens/gymtracker/pkg"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("ERROR"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("Info"))
	assert.Equal(t, logrus.TraceLevel, GetLevel(" trace "))
	assert.Equal(t, logrus.InfoLevel, GetLevel("unknown"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
}

func TestNewOutput(t *testing.T) {
	assert.Equal(t, os.Stdout, newOutput(LoggerSetupParams{}))

	dir := t.TempDir()
	out := newOutput(LoggerSetupParams{LogFileName: filepath.Join(dir, "gymtracker")})
	fileLogger, ok := out.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "gymtracker.log"), fileLogger.Filename)
	assert.Equal(t, logFileMaxSizeMB, fileLogger.MaxSize)
	require.NoError(t, fileLogger.Close())

	out = newOutput(LoggerSetupParams{LogFileName: filepath.Join(dir, "service.log"), LogToStdout: true})
	combined, ok := out.(*pkg.CombinedWriter)
	require.True(t, ok)
	assert.Equal(t, 2, combined.Len())
}

func TestSentryHook_Levels(t *testing.T) {
	levels := []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel}
	hook := NewSentryHook(levels)
	assert.Equal(t, levels, hook.Levels())
	// firing without an initialized client is a no-op
	assert.NoError(t, hook.Fire(logrus.WithField("workout", "push-day").WithField(logrus.ErrorKey, assert.AnError)))
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.PanicLevel))
	assert.Equal(t, sentry.LevelError, sentryLevel(logrus.ErrorLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(logrus.WarnLevel))
	assert.Equal(t, sentry.LevelDebug, sentryLevel(logrus.TraceLevel))
}
