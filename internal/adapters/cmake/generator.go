// Package cmake writes CMakeLists.txt files for build units.
package cmake

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Generator = (*Generator)(nil)

// FileName is the name of the generated file.
const FileName = "CMakeLists.txt"

const minimumVersion = "3.16"

// Generator implements ports.Generator.
type Generator struct {
	logger ports.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(logger ports.Logger) *Generator {
	return &Generator{logger: logger}
}

type define struct {
	key   string
	value string
}

type dependency struct {
	name string
	dir  string
}

type sourceGroup struct {
	sources []string
	flags   []string
}

// lists is the content of one CMakeLists.txt.
type lists struct {
	name         string
	languages    []string
	executable   bool
	defines      []define
	dependencies []dependency
	sources      []string
	groups       []sourceGroup
	linkerFlags  []string
}

// Generate writes <project.Dir>/CMakeLists.txt.
func (g *Generator) Generate(ctx context.Context, project domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if project.Kind == domain.KindUnknown {
		return zerr.With(zerr.New("project has no target type"), "project", project.Name)
	}

	path := filepath.Join(project.Dir, FileName)
	if err := os.WriteFile(path, newLists(project).render(), 0o644); err != nil { //nolint:gosec // generated build file is meant to be shared
		return zerr.With(zerr.Wrap(err, "failed to write "+FileName), "path", path)
	}
	g.logger.Debug("generated " + path)
	return nil
}

func newLists(project domain.Project) lists {
	data := lists{
		name:       project.Name,
		executable: project.Kind == domain.KindExecutable,
		sources:    slices.Sorted(slices.Values(project.Sources)),
	}
	if data.executable {
		data.linkerFlags = project.LinkerFlags
	}

	keys := make([]string, 0, len(project.Defines))
	for key := range project.Defines {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		data.defines = append(data.defines, define{key: key, value: project.Defines[key]})
	}

	for _, dep := range project.Dependencies {
		data.dependencies = append(data.dependencies, dependency{name: dep.Name, dir: filepath.ToSlash(dep.Dir)})
	}

	languages := make(map[string]bool)
	byExt := make(map[string][]string)
	for _, src := range data.sources {
		ext := strings.TrimPrefix(filepath.Ext(src), ".")
		byExt[ext] = append(byExt[ext], src)
		if lang := language(ext); lang != "" {
			languages[lang] = true
		}
	}
	for lang := range languages {
		data.languages = append(data.languages, lang)
	}
	slices.Sort(data.languages)

	exts := make([]string, 0, len(byExt))
	for ext := range byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	for _, ext := range exts {
		opt, ok := project.Extensions[ext]
		if !ok {
			continue
		}
		if len(opt.Flags) > 0 {
			data.groups = append(data.groups, sourceGroup{sources: byExt[ext], flags: domain.Strings(opt.Flags)})
		}
	}
	return data
}

func (l lists) render() []byte {
	var b bytes.Buffer
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(&b, format, args...) }

	p("# Generated by beelder from %s%s. Do not edit.\n", l.name, domain.DescriptionExtension)
	p("cmake_minimum_required(VERSION %s)\n", minimumVersion)
	if len(l.languages) > 0 {
		p("project(%s LANGUAGES %s)\n", quote(l.name), strings.Join(l.languages, " "))
	} else {
		p("project(%s)\n", quote(l.name))
	}

	if len(l.defines) > 0 {
		p("\n")
		for _, d := range l.defines {
			p("set(%s %s)\n", d.key, quote(d.value))
		}
	}

	for _, dep := range l.dependencies {
		p("\nif(NOT TARGET %s)\n", quote(dep.name))
		p("  add_subdirectory(%s ${CMAKE_BINARY_DIR}/%s)\n", quote(dep.dir), dep.name)
		p("endif()\n")
	}

	p("\n")
	if l.executable {
		p("add_executable(%s\n", quote(l.name))
	} else {
		p("add_library(%s STATIC\n", quote(l.name))
	}
	for _, src := range l.sources {
		p("  %s\n", quote(src))
	}
	p(")\n")

	for _, g := range l.groups {
		p("\nset_source_files_properties(%s\n", quoteAll(g.sources))
		p("  PROPERTIES COMPILE_OPTIONS %s)\n", quote(strings.Join(g.flags, ";")))
	}

	if len(l.dependencies) > 0 {
		names := make([]string, len(l.dependencies))
		for i, dep := range l.dependencies {
			names[i] = dep.name
		}
		p("\ntarget_link_libraries(%s PRIVATE %s)\n", quote(l.name), quoteAll(names))
	}
	if len(l.linkerFlags) > 0 {
		p("\ntarget_link_options(%s PRIVATE %s)\n", quote(l.name), quoteAll(l.linkerFlags))
	}
	return b.Bytes()
}

func language(ext string) string {
	switch ext {
	case "c":
		return "C"
	case "cc", "cpp", "cxx", "c++", "C":
		return "CXX"
	case "s", "S", "asm":
		return "ASM"
	default:
		return ""
	}
}

func quoteAll(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = quote(a)
	}
	return strings.Join(quoted, " ")
}

// quote returns s as one CMake argument, in double quotes unless it is a plain word.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"\\;#()$") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}
