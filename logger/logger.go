// Package logger builds the zap logger shared by the services.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a production zap logger at level, tagged with service.
func New(service, level string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = atomic
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("service", service)), nil
}

// Must is New that panics.
func Must(service, level string) *zap.Logger {
	log, err := New(service, level)
	if err != nil {
		panic(err)
	}
	return log
}
