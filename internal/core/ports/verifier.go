package ports

// Verifier checks that a finished link or archive step left its binary behind.
//
//go:generate mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type Verifier interface {
	// VerifyOutputs reports whether every output, relative to root, exists as a file.
	// A directory in place of an output does not count.
	VerifyOutputs(root string, outputs []string) (bool, error)
}
