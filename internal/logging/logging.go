package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the diagnostic logger. Mode "dev" is a human-readable console
// logger at debug level; anything else is production JSON at info level.
// Both write to stderr, keeping stdout free for command output.
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch mode {
	case "dev":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything. Used in tests and before
// configuration is loaded.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
