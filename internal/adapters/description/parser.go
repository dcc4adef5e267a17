// Package description parses build-description files into domain fields.
//
// There is no quoting: '#' always starts a comment and ',' always separates values, so a
// Commands line cannot contain either character. Put such commands in a script and call it.
package description

import (
	"fmt"
	"os"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
	"go.trai.ch/zerr"
)

// Parser implements ports.DescriptionParser.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the file at path into fields. References are handed to hooks as soon as
// the list that declares them has been read.
func (p *Parser) Parse(path string, fields *domain.Fields, hooks ports.ParseHooks) error {
	f, err := os.Open(path) //nolint:gosec // path comes from the include graph
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open build description"), "path", path)
	}
	defer func() { _ = f.Close() }()

	lines, err := lex(f)
	if err != nil {
		return zerr.With(err, "path", path)
	}
	roots, err := buildTree(lines)
	if err != nil {
		return err
	}

	for _, n := range roots {
		if err := parseField(n, fields, hooks); err != nil {
			return err
		}
	}
	return nil
}

func parseField(n *node, fields *domain.Fields, hooks ports.ParseHooks) error {
	switch n.key {
	case "Include":
		return parseInclude(n, fields, hooks)
	case "Define":
		return parseDefines(n, fields)
	case "Commands":
		return parseCommands(n, fields)
	case "Build":
		return parseBuild(n, &fields.Build, hooks)
	case "Default":
		args, err := n.arguments()
		if err != nil {
			return err
		}
		fields.Default = append(fields.Default, domain.InternStrings(args)...)
		return nil
	default:
		return lineError(n.number, fmt.Sprintf("met unexpected field %q", n.key))
	}
}

func parseInclude(n *node, fields *domain.Fields, hooks ports.ParseHooks) error {
	args, err := n.arguments()
	if err != nil {
		return err
	}
	patterns := domain.InternStrings(args)
	fields.Include = append(fields.Include, patterns...)
	for _, pattern := range args {
		if err := hooks.Include(pattern); err != nil {
			return zerr.With(err, "line", n.number)
		}
	}
	return nil
}

func parseDefines(n *node, fields *domain.Fields) error {
	rules, err := n.rules()
	if err != nil {
		return err
	}
	for _, r := range rules {
		if len(r.children) > 0 || len(r.values) != 1 {
			return lineError(r.number, "invalid pair for a key")
		}
		if !fields.AddDefine(r.key, r.values[0]) {
			return lineError(r.number, fmt.Sprintf("define redefinition of %q", r.key))
		}
	}
	return nil
}

func parseCommands(n *node, fields *domain.Fields) error {
	rules, err := n.rules()
	if err != nil {
		return err
	}
	for _, r := range rules {
		args, err := r.arguments()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return lineError(r.number, fmt.Sprintf("command %q has no lines", r.key))
		}
		for _, cmd := range args {
			fields.AppendCommand(r.key, cmd)
		}
	}
	return nil
}

func parseBuild(n *node, spec *domain.BuildSpec, hooks ports.ParseHooks) error {
	rules, err := n.rules()
	if err != nil {
		return err
	}
	spec.Declare()

	for _, r := range rules {
		var err error
		switch r.key {
		case "Type":
			err = parseType(r, spec)
		case "Depends":
			err = parseDepends(r, spec, hooks)
		case "Src":
			var args []string
			if args, err = r.arguments(); err == nil {
				spec.Sources = append(spec.Sources, domain.InternStrings(args)...)
			}
		case "Extensions":
			err = parseExtensions(r, spec)
		case "Link":
			err = parseLink(r, spec)
		case "Archiver":
			var archiver string
			if archiver, err = r.single(); err == nil {
				spec.SetArchiver(archiver)
			}
		default:
			err = lineError(r.number, fmt.Sprintf("met unexpected Build subfield %q", r.key))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseType(r *node, spec *domain.BuildSpec) error {
	value, err := r.single()
	if err != nil {
		return err
	}
	kind, ok := domain.ParseTargetKind(value)
	if !ok {
		return lineError(r.number, "incorrect type (choose either StaticLib or Executable)")
	}
	spec.Kind = kind
	return nil
}

func parseDepends(r *node, spec *domain.BuildSpec, hooks ports.ParseHooks) error {
	args, err := r.arguments()
	if err != nil {
		return err
	}
	spec.Depends = append(spec.Depends, domain.InternStrings(args)...)
	for _, pattern := range args {
		if err := hooks.Depend(pattern); err != nil {
			return zerr.With(err, "line", r.number)
		}
	}
	return nil
}

func parseExtensions(r *node, spec *domain.BuildSpec) error {
	exts, err := r.rules()
	if err != nil {
		return err
	}
	for _, ext := range exts {
		options, err := ext.rules()
		if err != nil {
			return err
		}
		if len(options) == 0 {
			return lineError(ext.number, "no options specified for extension")
		}
		for _, opt := range options {
			switch opt.key {
			case "Compiler":
				compiler, err := opt.single()
				if err != nil {
					return err
				}
				if !spec.SetCompiler(ext.key, compiler) {
					return lineError(opt.number, "compiler redefinition")
				}
			case "Flags":
				flags, err := opt.arguments()
				if err != nil {
					return err
				}
				for _, flag := range flags {
					spec.AddFlag(ext.key, flag)
				}
			default:
				return lineError(opt.number, "invalid option for extension - "+opt.key)
			}
		}
		if _, ok := spec.OptionFor(ext.key); !ok {
			return lineError(ext.number, "no compiler is specified")
		}
	}
	return nil
}

func parseLink(r *node, spec *domain.BuildSpec) error {
	options, err := r.rules()
	if err != nil {
		return err
	}
	for _, opt := range options {
		switch opt.key {
		case "Linker":
			linker, err := opt.single()
			if err != nil {
				return err
			}
			spec.SetLinker(linker)
		case "Flags":
			flags, err := opt.arguments()
			if err != nil {
				return err
			}
			for _, flag := range flags {
				spec.AddLinkerFlag(flag)
			}
		default:
			return lineError(opt.number, fmt.Sprintf("unknown Link option %q", opt.key))
		}
	}
	return nil
}
