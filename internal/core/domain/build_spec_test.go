package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/beelder/internal/core/domain"
)

func TestParseTargetKind(t *testing.T) {
	tests := []struct {
		input string
		kind  domain.TargetKind
		ok    bool
	}{
		{"StaticLib", domain.KindStaticLib, true},
		{"Executable", domain.KindExecutable, true},
		{"SharedLib", domain.KindUnknown, false},
		{"", domain.KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, ok := domain.ParseTargetKind(tt.input)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestBuildSpec_Compilers(t *testing.T) {
	var spec domain.BuildSpec

	require.True(t, spec.SetCompiler("c", "gcc"))
	require.False(t, spec.SetCompiler("c", "clang"), "redefinition must be rejected")
	spec.AddFlag("c", "-Wall")
	spec.AddFlag("c", "-O2")

	opt, ok := spec.OptionFor("c")
	require.True(t, ok)
	assert.Equal(t, "gcc", opt.Compiler.String())
	assert.Equal(t, []string{"-Wall", "-O2"}, domain.Strings(opt.Flags))

	_, ok = spec.OptionFor("cpp")
	assert.False(t, ok)
}

func TestBuildSpec_Defaults(t *testing.T) {
	var spec domain.BuildSpec
	assert.Equal(t, domain.DefaultLinker, spec.LinkerOrDefault())
	assert.Equal(t, domain.DefaultArchiver, spec.ArchiverOrDefault())

	spec.SetLinker("g++")
	spec.SetArchiver("llvm-ar")
	assert.Equal(t, "g++", spec.LinkerOrDefault())
	assert.Equal(t, "llvm-ar", spec.ArchiverOrDefault())
}

func TestBuildSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func(*domain.BuildSpec)
		wantErr bool
	}{
		{
			name: "executable with linker",
			build: func(b *domain.BuildSpec) {
				b.Kind = domain.KindExecutable
				b.SetLinker("cc")
				b.AddLinkerFlag("-lm")
			},
		},
		{
			name: "executable with archiver",
			build: func(b *domain.BuildSpec) {
				b.Kind = domain.KindExecutable
				b.SetArchiver("ar")
			},
			wantErr: true,
		},
		{
			name: "static lib with archiver",
			build: func(b *domain.BuildSpec) {
				b.Kind = domain.KindStaticLib
				b.SetArchiver("ar")
			},
		},
		{
			name: "static lib with linker flags",
			build: func(b *domain.BuildSpec) {
				b.Kind = domain.KindStaticLib
				b.AddLinkerFlag("-lm")
			},
			wantErr: true,
		},
		{
			name: "static lib with linker",
			build: func(b *domain.BuildSpec) {
				b.Kind = domain.KindStaticLib
				b.SetLinker("ld")
			},
			wantErr: true,
		},
		{
			name: "sources without type",
			build: func(b *domain.BuildSpec) {
				b.Declare()
				b.Sources = domain.InternStrings([]string{"*.c"})
			},
			wantErr: true,
		},
		{
			name: "flags without compiler",
			build: func(b *domain.BuildSpec) {
				b.Kind = domain.KindExecutable
				b.AddFlag("c", "-Wall")
			},
			wantErr: true,
		},
		{
			name:  "no build field",
			build: func(*domain.BuildSpec) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spec domain.BuildSpec
			tt.build(&spec)

			err := spec.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidField)
				return
			}
			require.NoError(t, err)
		})
	}
}
