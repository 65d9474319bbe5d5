package auth

// Logger is an interface for optional logging of refresh events.
// Implementations can log token refresh outcomes if desired; when no
// logger is configured, nothing is logged.
type Logger interface {
	Printf(format string, args ...any)
}
