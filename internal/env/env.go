// Package env resolves driver settings that do not come from the command
// line: the project root, the configuration file, the build directory, the
// compiler override and the log level.
//
// Process environment variables win over the project's .env file, which wins
// over the defaults.
package env

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ldalzotto/EngineCPPRewrite/internal/config"
)

// Variables read by Load.
const (
	Config   = "EBUILD_CONFIG"
	BuildDir = "EBUILD_BUILD_DIR"
	Compiler = "EBUILD_COMPILER"
	LogLevel = "EBUILD_LOG_LEVEL"
)

// DotEnv is the optional settings file in the project root.
const DotEnv = ".env"

// BuildDirName is the default build directory inside the project root.
const BuildDirName = "build"

// Settings are the resolved driver settings. Paths are absolute.
type Settings struct {
	Root     string
	Config   string
	BuildDir string
	Compiler string // empty: use the configuration's compiler
	LogLevel string // empty: info
}

// Load resolves settings for the project rooted at root, or at the working
// directory when root is empty.
func Load(root string) (*Settings, error) {
	root, err := WorkDir(root)
	if err != nil {
		return nil, err
	}
	file, err := godotenv.Read(filepath.Join(root, DotEnv))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return file[key]
	}

	s := &Settings{
		Root:     root,
		Config:   filepath.Join(root, config.DefaultFile),
		BuildDir: filepath.Join(root, BuildDirName),
		Compiler: lookup(Compiler),
		LogLevel: lookup(LogLevel),
	}
	if v := lookup(Config); v != "" {
		s.Config = Abs(root, v)
	}
	if v := lookup(BuildDir); v != "" {
		s.BuildDir = Abs(root, v)
	}
	return s, nil
}

// WorkDir returns root as an absolute path, defaulting to the working
// directory.
func WorkDir(root string) (string, error) {
	if root == "" {
		return os.Getwd()
	}
	return filepath.Abs(root)
}

// Abs anchors a relative path at root.
func Abs(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
