package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/beelder/internal/core/domain"
)

func TestUnitState_CanTransition(t *testing.T) {
	all := []domain.UnitState{
		domain.StateNotStarted,
		domain.StateParseError,
		domain.StateParsed,
		domain.StateBuildError,
		domain.StateBuilt,
	}
	allowed := map[[2]domain.UnitState]bool{
		{domain.StateNotStarted, domain.StateParsed}:     true,
		{domain.StateNotStarted, domain.StateParseError}: true,
		{domain.StateParsed, domain.StateBuilt}:          true,
		{domain.StateParsed, domain.StateBuildError}:     true,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				assert.Equal(t, allowed[[2]domain.UnitState{from, to}], from.CanTransition(to))
			})
		}
	}
}

func TestUnitState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    domain.UnitState
		terminal bool
	}{
		{domain.StateNotStarted, false},
		{domain.StateParsed, false},
		{domain.StateParseError, true},
		{domain.StateBuildError, true},
		{domain.StateBuilt, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "Parse", domain.OperationParse.String())
	assert.Equal(t, "Build", domain.OperationBuild.String())
}
