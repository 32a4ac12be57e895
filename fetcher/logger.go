package fetcher

import "log/slog"

// Logger receives the fetcher's diagnostics. Attributes are alternating
// key-value pairs as in log/slog:
//
//	log.Info("spec stored", "status", "created", "bytes", 48213)
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger discards everything. It is the default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter sends records to a *slog.Logger.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l; nil means slog.Default().
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{l: l}
}

func (a *SlogAdapter) Debug(msg string, attrs ...any) { a.l.Debug(msg, attrs...) }
func (a *SlogAdapter) Info(msg string, attrs ...any)  { a.l.Info(msg, attrs...) }
func (a *SlogAdapter) Warn(msg string, attrs ...any)  { a.l.Warn(msg, attrs...) }
func (a *SlogAdapter) Error(msg string, attrs ...any) { a.l.Error(msg, attrs...) }
func (a *SlogAdapter) With(attrs ...any) Logger       { return &SlogAdapter{l: a.l.With(attrs...)} }

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)
