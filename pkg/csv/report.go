package csv

import (
	"go.uber.org/zap"
)

// Reporter receives diagnostics: recovered parse problems and failed field
// conversions. Report must not block; its return is not awaited.
type Reporter interface {
	Report(kind ErrorKind, msg string)
}

// ReporterFunc is a function adapter for the Reporter interface.
type ReporterFunc func(kind ErrorKind, msg string)

// Report implements Reporter.
func (f ReporterFunc) Report(kind ErrorKind, msg string) {
	f(kind, msg)
}

// NopReporter discards every diagnostic.
var NopReporter Reporter = ReporterFunc(func(ErrorKind, string) {})

type zapReporter struct {
	logger *zap.Logger
}

// NewZapReporter returns a Reporter that logs each diagnostic as a warning.
// A nil logger discards diagnostics.
func NewZapReporter(l *zap.Logger) Reporter {
	if l == nil {
		l = zap.NewNop()
	}
	return &zapReporter{logger: l.WithOptions(zap.AddCallerSkip(1))}
}

func (r *zapReporter) Report(kind ErrorKind, msg string) {
	r.logger.Warn(msg, zap.String("kind", kind.String()))
}

// reporterOrNop returns r, or NopReporter when r is nil.
func reporterOrNop(r Reporter) Reporter {
	if r == nil {
		return NopReporter
	}
	return r
}
