package mergeinfer

import (
	"io"

	"go.uber.org/zap"
)

// Logger encapsulates a Logger and module which it belongs to.
// Use this through SetLogger() of analysers.
type Logger struct {
	*zap.SugaredLogger
	module string
}

type LogSetter interface {
	SetLogger(*Logger)
}

// Module returns (stylised) module name.
func (l *Logger) Module() string {
	return l.module
}

// Writer returns l as a writer for loggers from the log package, messages are
// written at debug level.
func (l *Logger) Writer() io.Writer {
	return &zapWriter{l}
}

type zapWriter struct{ l *Logger }

func (w *zapWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.l.Debugf("%s %s", w.l.Module(), msg)
	return len(p), nil
}
