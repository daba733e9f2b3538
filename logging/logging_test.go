package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetDebug(t *testing.T) {
	defer SetDebug(false)

	SetDebug(true)
	if !Logger().Core().Enabled(zapcore.DebugLevel) {
		t.Errorf("expected debug logging to be enabled")
	}

	SetDebug(false)
	if Logger().Core().Enabled(zapcore.DebugLevel) {
		t.Errorf("expected debug logging to be disabled")
	}
}

func TestConfigure(t *testing.T) {
	defer Configure(zapcore.InfoLevel, "console")

	Configure(zapcore.WarnLevel, "json")
	if Logger().Core().Enabled(zapcore.InfoLevel) {
		t.Errorf("expected info logging to be disabled at warn level")
	}

	if !Logger().Core().Enabled(zapcore.ErrorLevel) {
		t.Errorf("expected error logging to be enabled at warn level")
	}
}
