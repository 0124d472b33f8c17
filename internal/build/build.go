package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/qiniu/x/log"

	"github.com/ldalzotto/EngineCPPRewrite/internal/command"
	"github.com/ldalzotto/EngineCPPRewrite/internal/compiledb"
	"github.com/ldalzotto/EngineCPPRewrite/internal/config"
	"github.com/ldalzotto/EngineCPPRewrite/internal/modules"
	"github.com/ldalzotto/EngineCPPRewrite/internal/resolve"
	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
	"github.com/ldalzotto/EngineCPPRewrite/pkgs/toolchain"
)

// Targets that are not module names.
const (
	ModeAll             = "all"
	ModeCompileDatabase = "compile_database"
)

// Runner runs command lines in order and stops at the first failure.
type Runner interface {
	Run(ctx context.Context, cmds []command.Command) error
}

// Options configure a Builder.
type Options struct {
	Catalog  *modules.Catalog
	Flags    toolchain.Flags
	Defines  map[module.Variant][]config.Define
	BuildDir string
	Runner   Runner

	// NoReport disables the build report, e.g. for dry runs.
	NoReport bool
}

type Builder struct {
	catalog  *modules.Catalog
	flags    toolchain.Flags
	synth    *command.Synthesizer
	buildDir string
	runner   Runner
	noReport bool
}

func NewBuilder(opts Options) *Builder {
	return &Builder{
		catalog:  opts.Catalog,
		flags:    opts.Flags,
		synth:    command.NewSynthesizer(opts.Flags, opts.BuildDir, opts.Defines),
		buildDir: opts.BuildDir,
		runner:   opts.Runner,
		noReport: opts.NoReport,
	}
}

// Roots returns the modules whose closures make up target: every executable
// for ModeAll, every executable and static library for ModeCompileDatabase,
// the named module otherwise.
func (b *Builder) Roots(target string) ([]string, error) {
	switch target {
	case ModeAll:
		return b.catalog.Filter(module.Executable), nil
	case ModeCompileDatabase:
		return b.catalog.Filter(module.Executable, module.StaticLibrary), nil
	}
	if _, err := b.catalog.Get(target); err != nil {
		return nil, err
	}
	return []string{target}, nil
}

// Plan resolves roots in order with one shared resolver and returns the
// commands of their combined closure. A module shared by several roots is
// built once.
func (b *Builder) Plan(roots ...string) ([]command.Command, error) {
	r := resolve.New(b.catalog)
	var cmds []command.Command
	for _, root := range roots {
		actions, err := r.Resolve(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}
		log.Debugf("resolve %s: %d actions", root, len(actions))
		c, err := b.synth.SynthesizeAll(actions)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c...)
	}
	return cmds, nil
}

// Build builds target: a module name, ModeAll or ModeCompileDatabase. The
// whole plan is computed before the first command runs. Execution stops at
// the first failing command.
func (b *Builder) Build(ctx context.Context, target string) error {
	if target == ModeCompileDatabase {
		_, err := b.CompileDatabase()
		return err
	}
	roots, err := b.Roots(target)
	if err != nil {
		return err
	}
	cmds, err := b.Plan(roots...)
	if err != nil {
		return err
	}
	log.Infof("%s: %d roots, %d commands", target, len(roots), len(cmds))

	if err := os.MkdirAll(b.buildDir, 0o755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	report := newReport(target, b.flags.Name())
	defer b.saveReport(report)

	for _, c := range cmds {
		log.Debugf("run %s", c.Line)
		start := time.Now()
		err := b.runner.Run(ctx, []command.Command{c})
		report.add(c, time.Since(start), err)
		if err != nil {
			return err
		}
	}
	return nil
}

// CompileDatabase writes the compilation database of every executable and
// static library closure without running anything, and returns its path.
func (b *Builder) CompileDatabase() (string, error) {
	roots, _ := b.Roots(ModeCompileDatabase)
	cmds, err := b.Plan(roots...)
	if err != nil {
		return "", err
	}
	path := filepath.Join(b.buildDir, compiledb.FileName)
	if err := compiledb.Write(path, b.buildDir, cmds); err != nil {
		return "", err
	}
	log.Infof("%s: %d entries written to %s", ModeCompileDatabase, len(cmds), path)
	return path, nil
}

// ReportPath returns the location of the build report.
func (b *Builder) ReportPath() string {
	return filepath.Join(b.buildDir, reportFile)
}

func (b *Builder) saveReport(r *buildReport) {
	if b.noReport {
		return
	}
	if err := saveReport(b.ReportPath(), r); err != nil {
		log.Warnf("failed to write build report: %v", err)
	}
}
