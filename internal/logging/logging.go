package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
)

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		// Fallback to a development logger if not initialized
		dev, err := zap.NewDevelopment(zap.AddCallerSkip(1))
		if err != nil {
			dev = zap.NewNop()
		}
		logger = dev
	}
	return logger
}

// SetLogger sets the global logger instance
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Sync flushes buffered entries; call before exit.
func Sync() {
	_ = GetLogger().Sync()
}

// DebugLog logs a debug message with printf-style formatting
func DebugLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Debugf(msg, args...)
}

// InfoLog logs an info message with printf-style formatting
func InfoLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Infof(msg, args...)
}

// WarnLog logs a warning message with printf-style formatting
func WarnLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Warnf(msg, args...)
}

// ErrorLog logs an error message with printf-style formatting
func ErrorLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Errorf(msg, args...)
}

// FatalLog logs a fatal message with printf-style formatting and exits
func FatalLog(msg string, args ...interface{}) {
	GetLogger().Sugar().Fatalf(msg, args...)
}

// Info logs a structured info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}
