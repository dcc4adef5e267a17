package ports

// Logger receives diagnostics about the engine itself. Build progress goes to Console.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string)
	Info(msg string)
	// Warn reports a recoverable problem, such as an unknown command name.
	Warn(msg string)
	// Error logs err together with its metadata.
	Error(err error)
}
