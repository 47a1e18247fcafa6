package monitoring

import "log"

// Logf is the package-level diagnostic logger used by the capture tools and
// the store. It defaults to log.Printf and may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil mutes it.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Prefixed returns a logger that prepends prefix to every message and writes
// through the logger that was current when it was built.
func Prefixed(prefix string) func(format string, v ...interface{}) {
	next := Logf
	return func(format string, v ...interface{}) {
		next(prefix+format, v...)
	}
}

// UsePrefix installs a Prefixed logger over the current one and returns a
// func that restores the previous logger.
func UsePrefix(prefix string) (restore func()) {
	prev := Logf
	SetLogger(Prefixed(prefix))
	return func() { Logf = prev }
}
