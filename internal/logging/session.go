package logging

import (
	"go.uber.org/zap"

	"github.com/moffa90/go-lcd1602/session"
)

// SessionLogger adapts a zap logger to session.Logger.
type SessionLogger struct {
	sugar *zap.SugaredLogger
}

var _ session.Logger = (*SessionLogger)(nil)

// NewSessionLogger returns a session.Logger that writes through base,
// tagged with component=session.
func NewSessionLogger(base *zap.Logger) *SessionLogger {
	return &SessionLogger{
		sugar: base.With(zap.String("component", "session")).Sugar(),
	}
}

func (l *SessionLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *SessionLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *SessionLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}
