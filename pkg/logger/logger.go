package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger shared by the server, the serverless functions and folioctl.
// Package-level helpers keep call sites short; components that want
// structured fields take a *zap.Logger from Named.

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  = build("", level)
	sugar = base.Sugar()
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal)
// and the encoding ("json" or "console", empty means console).
func Init(l string, format ...string) {
	level.SetLevel(parseLevel(l))
	f := ""
	if len(format) > 0 {
		f = format[0]
	}
	use(build(f, level))
}

func parseLevel(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func build(format string, lvl zap.AtomicLevel) *zap.Logger {
	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.DisableStacktrace = true
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = lvl
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// use swaps the backing logger (tests install an observer core here).
func use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugar = l.Sugar()
}

func current() (*zap.Logger, *zap.SugaredLogger) {
	mu.RLock()
	defer mu.RUnlock()
	return base, sugar
}

// L returns the structured logger.
func L() *zap.Logger {
	l, _ := current()
	return l
}

// Named returns a child logger for a component.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

func s() *zap.SugaredLogger {
	_, sg := current()
	return sg.WithOptions(zap.AddCallerSkip(1))
}

func Debugf(format string, v ...interface{}) { s().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { s().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { s().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { s().Errorf(format, v...) }
func Fatalf(format string, v ...interface{}) { s().Fatalf(format, v...) }

func Debug(v string) { s().Debug(v) }
func Info(v string)  { s().Info(v) }
func Warn(v string)  { s().Warn(v) }
func Error(v string) { s().Error(v) }

// Sync flushes buffered entries; call before exit.
func Sync() {
	_ = L().Sync()
}

// LevelString returns the current level as text.
func LevelString() string {
	return level.Level().String()
}
