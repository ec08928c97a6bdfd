package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.input))
		})
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")

	log := NewLogger()
	_, isJSON := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestRedirectAll(t *testing.T) {
	first, second := NewLogger(), NewLogger()
	t.Cleanup(func() { RedirectAll(os.Stdout) })

	var buf bytes.Buffer
	RedirectAll(&buf)
	first.Info("one")
	second.Info("two")

	assert.Contains(t, buf.String(), "one")
	assert.Contains(t, buf.String(), "two")
}
