package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Local development gets the
// console encoder; everything else gets production JSON output.
func NewLogger(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "local" || env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
