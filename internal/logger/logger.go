package logger

import (
	"log"

	"go.uber.org/zap"
)

// Defaults to a no-op logger so packages can log before Init runs.
var sugar = zap.NewNop().Sugar()

func Init() {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	sugar = l.Sugar()
}

// InitWith swaps the backing logger. Used by tests to capture output.
func InitWith(l *zap.Logger) {
	sugar = l.Sugar()
}

// Sync flushes buffered entries. Call on shutdown.
func Sync() {
	_ = sugar.Sync()
}

func Info(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

func Infof(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

func Error(msg string, keysAndValues ...interface{}) {
	sugar.Errorw(msg, keysAndValues...)
}

func Errorf(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

func Debug(msg string, keysAndValues ...interface{}) {
	sugar.Debugw(msg, keysAndValues...)
}

func Debugf(format string, v ...interface{}) {
	sugar.Debugf(format, v...)
}

func Fatal(msg string) {
	sugar.Fatal(msg)
}

func Fatalf(format string, v ...interface{}) {
	sugar.Fatalf(format, v...)
}
