package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error", "json")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFiltering(t *testing.T) {
	orig := L()
	defer use(orig)

	Init("warn")
	core, logs := observer.New(level)
	use(zap.New(core))

	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg %d", 1)
	Errorf("error-msg")

	if n := logs.FilterMessage("debug-msg").Len(); n != 0 {
		t.Fatalf("debug messages should be suppressed at warn level")
	}
	if n := logs.FilterMessage("info-msg").Len(); n != 0 {
		t.Fatalf("info messages should be suppressed at warn level")
	}
	if n := logs.FilterMessage("warn-msg 1").Len(); n != 1 {
		t.Fatalf("warn message missing: %v", logs.All())
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 1 {
		t.Fatalf("error message missing: %v", logs.All())
	}

	Init("info")
	use(zap.New(core))
	Info("hello")
	if logs.FilterMessage("hello").Len() != 1 {
		t.Fatalf("Info expected at info level")
	}
}

func TestNamedUsesCurrentLogger(t *testing.T) {
	orig := L()
	defer use(orig)

	core, logs := observer.New(zapcore.InfoLevel)
	use(zap.New(core))
	Named("notify").Info("sent")

	entries := logs.FilterMessage("sent").All()
	if len(entries) != 1 || entries[0].LoggerName != "notify" {
		t.Fatalf("expected one entry from the notify logger, got %v", entries)
	}
}
