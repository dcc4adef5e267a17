package ports

import "go.trai.ch/beelder/internal/core/domain"

// ParseHooks receives the references found while parsing a build-description file.
// Each call completes before the parser continues with the next line.
type ParseHooks interface {
	// Include is called for every pattern of the Include field.
	Include(pattern string) error
	// Depend is called for every pattern of the Build.Depends field.
	Depend(pattern string) error
}

// DescriptionParser populates fields from a build-description file.
//
//go:generate mockgen -source=description.go -destination=mocks/mock_description.go -package=mocks
type DescriptionParser interface {
	// Parse reads the file at path into fields.
	// Errors name the offending line and wrap domain.ErrParse.
	Parse(path string, fields *domain.Fields, hooks ParseHooks) error
}
