// Package logger はアプリケーション共通の構造化ロガーを提供します。
package logger

import (
	"log/slog"
	"os"
)

// Logger は slog をラップしたアプリケーションロガーです。
type Logger struct {
	*slog.Logger
}

// New は指定したレベルの Logger を作成します。
func New(level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})),
	}
}

// Fatal はエラーを記録した後 os.Exit(1) で終了します。
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
