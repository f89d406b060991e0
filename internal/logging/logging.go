package logging

import (
	"os"
	"strings"
	"sync"

	"busic/internal/config"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	globalMu     sync.RWMutex
	globalLogger = newDefault()
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// New builds a logger from the logging section of the settings.
func New(cfg config.Logging) (*logrus.Logger, error) {
	l := newDefault()

	raw := strings.TrimSpace(cfg.Level)
	if raw == "" {
		raw = "info"
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return nil, errors.Wrap(err, "logging level")
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.Format)
	}
	return l, nil
}

// L returns the process-wide logger.
func L() *logrus.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// ReplaceGlobal swaps the process-wide logger and returns a function restoring the previous one.
func ReplaceGlobal(l *logrus.Logger) func() {
	if l == nil {
		return func() {}
	}
	globalMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalMu.Unlock()
	return func() { ReplaceGlobal(prev) }
}
