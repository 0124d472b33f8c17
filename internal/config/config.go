// Package config decodes the build configuration document: the toolchain,
// the per-variant preprocessor defines and the ordered module declarations.
//
// The document is format-agnostic; JSON (the default, build_config.json),
// YAML and HCL encodings decode into the same Config.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
)

// DefaultFile is the configuration file looked up in the project root.
const DefaultFile = "build_config.json"

// SchemaMajor is the major schema version this tool understands.
const SchemaMajor = "v1"

// Define is one named preprocessor define.
type Define struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Environment lists the preprocessor defines of every build variant.
type Environment struct {
	Debug        []Define `json:"DEBUG" yaml:"DEBUG"`
	ReleaseDebug []Define `json:"RELEASE_DEBUG" yaml:"RELEASE_DEBUG"`
	Release      []Define `json:"RELEASE" yaml:"RELEASE"`
}

// Defines returns the defines declared for variant v.
func (e *Environment) Defines(v module.Variant) []Define {
	switch v {
	case module.Debug:
		return e.Debug
	case module.ReleaseDebug:
		return e.ReleaseDebug
	case module.Release:
		return e.Release
	}
	return nil
}

// ByVariant returns the defines keyed by variant.
func (e *Environment) ByVariant() map[module.Variant][]Define {
	out := make(map[module.Variant][]Define, len(module.Variants))
	for _, v := range module.Variants {
		out[v] = e.Defines(v)
	}
	return out
}

func (e *Environment) set(v module.Variant, defs []Define) {
	switch v {
	case module.Debug:
		e.Debug = defs
	case module.ReleaseDebug:
		e.ReleaseDebug = defs
	case module.Release:
		e.Release = defs
	}
}

// Module is one raw module declaration. Kind and variant stay strings here;
// the catalog validates them.
type Module struct {
	Name               string   `json:"base_name" yaml:"base_name"`
	Type               string   `json:"module_type" yaml:"module_type"`
	BuildType          string   `json:"build_type" yaml:"build_type"`
	RootFolder         string   `json:"root_folder" yaml:"root_folder"`
	MainFile           string   `json:"main_file,omitempty" yaml:"main_file,omitempty"`
	IncludeDirectories []string `json:"include_directories" yaml:"include_directories"`
	Dependencies       []string `json:"dependencies" yaml:"dependencies"`
}

// Config is the decoded configuration document.
type Config struct {
	Version     string      `json:"version,omitempty" yaml:"version,omitempty"`
	Compiler    string      `json:"compiler" yaml:"compiler"`
	Environment Environment `json:"environment" yaml:"environment"`
	Modules     []Module    `json:"modules" yaml:"modules"`
}

// Parse decodes a configuration document. When data is nil the content is
// read from file; file also selects the encoding by extension.
func Parse(file string, data []byte) (*Config, error) {
	if data == nil {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		data = b
	}

	var (
		cfg *Config
		err error
	)
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		cfg, err = decodeYAML(bytes.NewReader(data))
	case ".hcl":
		cfg, err = decodeHCL(file, data)
	default:
		cfg, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	if err := cfg.checkVersion(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return cfg, nil
}

func decodeJSON(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeYAML(r io.Reader) (*Config, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		if err == io.EOF {
			return &c, nil
		}
		return nil, err
	}
	return &c, nil
}

func (c *Config) checkVersion() error {
	if c.Version == "" {
		return nil
	}
	if !semver.IsValid(c.Version) {
		return fmt.Errorf("invalid schema version %q", c.Version)
	}
	if major := semver.Major(c.Version); major != SchemaMajor {
		return fmt.Errorf("unsupported schema version %s (want %s.x.y)", c.Version, SchemaMajor)
	}
	return nil
}
