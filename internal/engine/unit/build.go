package unit

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/zerr"
)

// process runs the invocation on a parsed Build unit.
func (u *Unit) process() error {
	if u.session.invocation.Mode == domain.ModeGenerate {
		return u.generate()
	}
	for _, name := range u.session.invocation.Commands(u.fields.Default) {
		var err error
		if name == domain.BuildCommand {
			err = u.build()
		} else {
			err = u.runCommand(name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// build compiles the sources, waits for the static libraries it depends on, finalizes and
// waits for the executables it depends on.
func (u *Unit) build() error {
	u.buildRuns.Add(1)

	compiles, objects, err := u.planCompiles()
	if err != nil {
		return err
	}
	for _, cu := range compiles {
		if err := u.session.Finder.MakeDir(filepath.Join(u.dir, filepath.Dir(cu.Binary))); err != nil {
			return err
		}
		if err := u.session.Executor.Enqueue(cu); err != nil {
			return err
		}
	}
	if err := u.await(func() bool { return u.compiles.Load() == 0 }); err != nil {
		return err
	}

	archives, err := u.awaitLibraries()
	if err != nil {
		return err
	}
	if u.State() == domain.StateBuildError {
		return zerr.Wrap(domain.ErrBuildFailed, "compilation failed")
	}

	if len(objects) > 0 {
		if err := u.finalize(objects, archives); err != nil {
			return err
		}
	}

	for _, child := range u.depends {
		if child.Kind() != domain.KindExecutable {
			continue
		}
		if err := u.awaitBuilt(child); err != nil {
			return err
		}
	}

	u.transition(domain.StateBuilt)
	return nil
}

// planCompiles resolves the source patterns into compile units, failing before anything is
// enqueued if a source has no compiler registered for its extension.
func (u *Unit) planCompiles() ([]*domain.ExecutableUnit, []string, error) {
	spec := &u.fields.Build
	seen := make(map[string]bool)
	var units []*domain.ExecutableUnit
	var objects []string

	for _, pattern := range spec.Sources {
		files, err := u.session.Finder.Sources(u.dir, pattern.String())
		if err != nil {
			return nil, nil, err
		}
		for _, file := range files {
			if seen[file] {
				continue
			}
			seen[file] = true

			ext := strings.TrimPrefix(filepath.Ext(file), ".")
			opt, ok := spec.OptionFor(ext)
			if !ok {
				return nil, nil, zerr.With(zerr.Wrap(domain.ErrUnknownExtension, fmt.Sprintf("no option for extension %q", ext)), "source", file)
			}

			object := filepath.Join(u.session.settings.OutputDir, file+".o")
			compiler := opt.Compiler.String()
			args := domain.Strings(opt.Flags)
			if needsCompileFlag(compiler) {
				args = append(args, "-c")
			}
			args = append(args, file, "-o", object)

			units = append(units, &domain.ExecutableUnit{
				Op:         domain.OpCompile,
				Owner:      u,
				Callee:     compiler,
				Source:     file,
				Binary:     object,
				Args:       args,
				WorkingDir: u.dir,
			})
			objects = append(objects, object)
		}
	}
	return units, objects, nil
}

// needsCompileFlag reports whether the compiler has to be told to stop before linking.
// Assemblers produce objects without it.
func needsCompileFlag(compiler string) bool {
	switch filepath.Base(compiler) {
	case "nasm", "yasm":
		return false
	default:
		return true
	}
}

// awaitLibraries waits for every static library u depends on to be built and returns their
// archives relative to u's directory.
func (u *Unit) awaitLibraries() ([]string, error) {
	var archives []string
	for _, child := range u.depends {
		if err := u.awaitParsed(child); err != nil {
			return nil, err
		}
		if child.Kind() != domain.KindStaticLib {
			continue
		}
		rel, err := filepath.Rel(u.dir, child.LibraryPath())
		if err != nil {
			return nil, zerr.Wrap(err, "failed to locate dependency archive")
		}
		archives = append(archives, rel)
		if err := u.awaitBuilt(child); err != nil {
			return nil, err
		}
	}
	return archives, nil
}

// finalize links or archives the objects and waits for the executor to report it.
func (u *Unit) finalize(objects, archives []string) error {
	spec := &u.fields.Build
	unit := &domain.ExecutableUnit{Owner: u, WorkingDir: u.dir}

	switch spec.Kind {
	case domain.KindStaticLib:
		lib := filepath.Join(u.session.settings.OutputDir, u.name+".a")
		unit.Op = domain.OpArchive
		unit.Callee = spec.ArchiverOrDefault()
		unit.Binary = lib
		unit.Args = append([]string{"rcs", lib}, objects...)
		unit.Args = append(unit.Args, archives...)
	case domain.KindExecutable:
		exe := filepath.Join(u.session.settings.OutputDir, u.name)
		unit.Op = domain.OpLink
		unit.Callee = spec.LinkerOrDefault()
		unit.Binary = exe
		unit.Args = domain.Strings(spec.LinkerFlags)
		unit.Args = append(unit.Args, archives...)
		unit.Args = append(unit.Args, objects...)
		// Archives again after the objects so single-pass linkers resolve symbols the objects need.
		unit.Args = append(unit.Args, archives...)
		unit.Args = append(unit.Args, "-o", exe)
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidField, "Build field requires a Type"), "path", u.path)
	}

	if err := u.session.Executor.Enqueue(unit); err != nil {
		return err
	}
	if err := u.await(u.finalized.Load); err != nil {
		return err
	}
	if u.State() == domain.StateBuildError {
		return zerr.Wrap(domain.ErrBuildFailed, strings.ToLower(unit.Op.String())+" failed")
	}

	ok, err := u.session.Verifier.VerifyOutputs(u.dir, []string{unit.Binary})
	if err != nil {
		return err
	}
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrBuildFailed, "output was not produced"), "output", unit.Binary)
	}
	return nil
}

// runCommand runs a user-defined command of the unit. Units that do not define the command skip it.
func (u *Unit) runCommand(name string) error {
	lines, ok := u.fields.Commands[name]
	if !ok {
		if u.root {
			u.session.Logger.Warn(fmt.Sprintf("%s: unknown command %q", u.path, name))
		}
		return nil
	}
	env := u.fields.Environment()
	for _, line := range lines {
		if err := u.session.Runner.Run(u.session.ctx, line.String(), u.dir, env); err != nil {
			return zerr.With(zerr.Wrap(err, fmt.Sprintf("command %q", name)), "line", line.String())
		}
	}
	return nil
}

// generate hands the unit's project description to the generator.
// Units without a Build field have nothing to generate.
func (u *Unit) generate() error {
	spec := &u.fields.Build
	if spec.Kind == domain.KindUnknown {
		return nil
	}

	project := domain.Project{
		Name:        u.name,
		Dir:         u.dir,
		Kind:        spec.Kind,
		Extensions:  make(map[string]domain.ExtensionOption, len(spec.Extensions)),
		LinkerFlags: domain.Strings(spec.LinkerFlags),
		Defines:     u.fields.Environment(),
	}
	for ext, opt := range spec.Extensions {
		project.Extensions[ext] = *opt
	}
	for _, pattern := range spec.Sources {
		files, err := u.session.Finder.Sources(u.dir, pattern.String())
		if err != nil {
			return err
		}
		project.Sources = append(project.Sources, files...)
	}
	for _, child := range u.depends {
		if err := u.awaitParsed(child); err != nil {
			return err
		}
		if child.Kind() != domain.KindStaticLib {
			continue
		}
		rel, err := filepath.Rel(u.dir, child.dir)
		if err != nil {
			return zerr.Wrap(err, "failed to locate dependency")
		}
		project.Dependencies = append(project.Dependencies, domain.ProjectRef{Name: child.name, Dir: rel})
	}

	return u.session.Generator.Generate(u.session.ctx, project)
}
