package ports

import (
	"context"

	"go.trai.ch/beelder/internal/core/domain"
)

// Generator writes an external project description for a unit instead of building it.
//
//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type Generator interface {
	Generate(ctx context.Context, project domain.Project) error
}
