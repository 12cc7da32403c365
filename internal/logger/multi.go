package logger

// Multi fans every diagnostic out to several loggers, e.g. the console and
// a per-run debug log file.
type Multi struct {
	loggers []Logger
}

// NewMulti returns a Logger that forwards to every non-nil logger given.
func NewMulti(loggers ...Logger) *Multi {
	m := &Multi{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Tracef forwards a trace-level message to every logger.
func (m *Multi) Tracef(format string, args ...any) {
	for _, l := range m.loggers {
		l.Tracef(format, args...)
	}
}

// Debugf forwards a debug-level message to every logger.
func (m *Multi) Debugf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Debugf(format, args...)
	}
}

// Infof forwards an info-level message to every logger.
func (m *Multi) Infof(format string, args ...any) {
	for _, l := range m.loggers {
		l.Infof(format, args...)
	}
}

// Warnf forwards a warning to every logger.
func (m *Multi) Warnf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Warnf(format, args...)
	}
}

// Errorf forwards an error to every logger.
func (m *Multi) Errorf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Errorf(format, args...)
	}
}
