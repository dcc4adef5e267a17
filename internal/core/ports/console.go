package ports

import "go.trai.ch/beelder/internal/core/domain"

// Console prints the user-facing build progress.
//
//go:generate mockgen -source=console.go -destination=mocks/mock_console.go -package=mocks
type Console interface {
	// Status prints the line reporting how one compile, link or archive step finished.
	Status(op domain.OpKind, outcome domain.Outcome, subject string)
	// Echo prints the output captured from a step.
	Echo(stdout, stderr []byte)
	// Fatal prints the diagnostic of an error that ends the build.
	Fatal(path string, err error)
}
