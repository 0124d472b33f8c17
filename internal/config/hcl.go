package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
)

// hclRoot mirrors Config using HCL blocks:
//
//	compiler = "GCC"
//	environment "DEBUG" {
//	  define "ENGINE_DEBUG" { value = "1" }
//	}
//	module "Core" {
//	  module_type = "INTERFACE"
//	  ...
//	}
type hclRoot struct {
	Version      string            `hcl:"version,optional"`
	Compiler     string            `hcl:"compiler,optional"`
	Environments []*hclEnvironment `hcl:"environment,block"`
	Modules      []*hclModule      `hcl:"module,block"`
}

type hclEnvironment struct {
	Variant string       `hcl:"variant,label"`
	Defines []*hclDefine `hcl:"define,block"`
}

type hclDefine struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

type hclModule struct {
	Name               string   `hcl:"name,label"`
	Type               string   `hcl:"module_type"`
	BuildType          string   `hcl:"build_type"`
	RootFolder         string   `hcl:"root_folder"`
	MainFile           string   `hcl:"main_file,optional"`
	IncludeDirectories []string `hcl:"include_directories,optional"`
	Dependencies       []string `hcl:"dependencies,optional"`
}

func decodeHCL(file string, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(data, file)
	if diags.HasErrors() {
		return nil, diags
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	c := &Config{
		Version:  root.Version,
		Compiler: root.Compiler,
	}
	seen := make(map[module.Variant]bool)
	for _, env := range root.Environments {
		v, err := module.ParseVariant(env.Variant)
		if err != nil {
			return nil, fmt.Errorf("environment block: %w", err)
		}
		if seen[v] {
			return nil, fmt.Errorf("environment %s declared twice", env.Variant)
		}
		seen[v] = true
		defs := make([]Define, 0, len(env.Defines))
		for _, d := range env.Defines {
			defs = append(defs, Define{Name: d.Name, Value: d.Value})
		}
		c.Environment.set(v, defs)
	}
	for _, m := range root.Modules {
		c.Modules = append(c.Modules, Module{
			Name:               m.Name,
			Type:               m.Type,
			BuildType:          m.BuildType,
			RootFolder:         m.RootFolder,
			MainFile:           m.MainFile,
			IncludeDirectories: m.IncludeDirectories,
			Dependencies:       m.Dependencies,
		})
	}
	return c, nil
}
