// internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	loggers []*logrus.Logger
)

// NewLogger returns a logrus logger configured from LOG_LEVEL and LOG_FORMAT.
// Every package keeps its own instance in a package-level customLog variable.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetLevel(ParseLevel(os.Getenv("LOG_LEVEL")))

	mu.Lock()
	loggers = append(loggers, log)
	mu.Unlock()
	return log
}

// RedirectAll points every logger created so far at w. The CLI uses it to keep stdout
// free for command output and the MCP stdio transport.
func RedirectAll(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	for _, log := range loggers {
		log.SetOutput(w)
	}
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	if level == "" {
		return logrus.InfoLevel
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
