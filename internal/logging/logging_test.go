package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_DevModeLogsDebug(t *testing.T) {
	logger, err := New("dev")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("dev logger should enable debug level")
	}
}

func TestNew_ProdModeLogsInfo(t *testing.T) {
	logger, err := New("prod")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("prod logger should not enable debug level")
	}
	if !logger.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("prod logger should enable info level")
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	// Must be safe to use.
	logger.Infow("ignored", "key", "value")
}
