package internal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/ldalzotto/EngineCPPRewrite/internal/build"
	"github.com/ldalzotto/EngineCPPRewrite/internal/config"
	"github.com/ldalzotto/EngineCPPRewrite/internal/env"
	"github.com/ldalzotto/EngineCPPRewrite/internal/executor"
	"github.com/ldalzotto/EngineCPPRewrite/internal/modules"
	"github.com/ldalzotto/EngineCPPRewrite/pkgs/toolchain"
)

var (
	buildConfig   string
	buildRoot     string
	buildDir      string
	buildCompiler string
	buildDryRun   bool
	buildVerbose  bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&buildConfig, "config", "c", "", "Configuration file (default <root>/build_config.json)")
	flags.StringVarP(&buildRoot, "root", "C", "", "Project root (default current directory)")
	flags.StringVarP(&buildDir, "build-dir", "b", "", "Build directory (default <root>/build)")
	flags.StringVar(&buildCompiler, "compiler", "", "Override the configured compiler ("+strings.Join(toolchain.Names(), ", ")+")")
	flags.BoolVarP(&buildDryRun, "dry-run", "n", false, "Print commands without running them")
	flags.BoolVarP(&buildVerbose, "verbose", "v", false, "Print every command and debug logs")
}

func runBuild(cmd *cobra.Command, args []string) error {
	settings, err := env.Load(buildRoot)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	level, err := logLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if buildVerbose {
		level = log.Ldebug
	}
	log.SetOutputLevel(level)

	if buildConfig != "" {
		if settings.Config, err = filepath.Abs(buildConfig); err != nil {
			return err
		}
	}
	if buildDir != "" {
		if settings.BuildDir, err = filepath.Abs(buildDir); err != nil {
			return err
		}
	}
	if buildCompiler != "" {
		settings.Compiler = buildCompiler
	}

	b, err := newBuilder(cmd, settings)
	if err != nil {
		return err
	}
	if err := b.Build(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to build %s: %w", args[0], err)
	}
	return nil
}

// newBuilder loads the configuration named by settings and returns a
// Builder running commands through the host shell.
func newBuilder(cmd *cobra.Command, settings *env.Settings) (*build.Builder, error) {
	cfg, err := config.Parse(settings.Config, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", modules.ErrConfiguration, err)
	}
	catalog, err := modules.Load(cfg, settings.Root)
	if err != nil {
		return nil, err
	}
	compiler := cfg.Compiler
	if settings.Compiler != "" {
		compiler = settings.Compiler
	}
	flags, err := toolchain.For(compiler)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", modules.ErrConfiguration, err)
	}
	log.Debugf("config %s: %d modules, compiler %s, build directory %s",
		settings.Config, catalog.Len(), flags.Name(), settings.BuildDir)

	return build.NewBuilder(build.Options{
		Catalog:  catalog,
		Flags:    flags,
		Defines:  cfg.Environment.ByVariant(),
		BuildDir: settings.BuildDir,
		Runner: &executor.Executor{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
			Echo:   buildVerbose,
			DryRun: buildDryRun,
		},
		NoReport: buildDryRun,
	}), nil
}

func logLevel(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.Ldebug, nil
	case "", "info":
		return log.Linfo, nil
	case "warn", "warning":
		return log.Lwarn, nil
	case "error":
		return log.Lerror, nil
	}
	return 0, fmt.Errorf("invalid %s %q (debug, info, warn, error)", env.LogLevel, s)
}
