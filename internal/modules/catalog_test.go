package modules

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ldalzotto/EngineCPPRewrite/internal/config"
	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
)

// iface, lib and exe build catalog entries with the given dependencies.
func iface(name string, deps ...string) *Module {
	return &Module{Name: name, Kind: module.Interface, Deps: deps}
}

func lib(name string, deps ...string) *Module {
	return &Module{Name: name, Kind: module.StaticLibrary, MainFile: name + ".c", Deps: deps}
}

func exe(name string, deps ...string) *Module {
	return &Module{Name: name, Kind: module.Executable, MainFile: name + ".c", Deps: deps}
}

func TestNew(t *testing.T) {
	c, err := New(iface("Core"), lib("Geo", "Core"), exe("App", "Geo", "Core"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := strings.Join(c.Names(), " "), "Core Geo App"; got != want {
		t.Errorf("Names() = %q, want %q", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	m, err := c.Get("Geo")
	if err != nil {
		t.Fatalf("Get(Geo): %v", err)
	}
	if m.Kind != module.StaticLibrary {
		t.Errorf("Get(Geo).Kind = %v", m.Kind)
	}
	if got := m.Lib().String(); got != "Geo_DEBUG" {
		t.Errorf("Lib() = %q", got)
	}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mods    []*Module
		wantMsg string
	}{
		{
			name:    "unresolved dependency",
			mods:    []*Module{exe("App", "Missing")},
			wantMsg: "dependency Missing referenced by App not declared",
		},
		{
			name:    "static library without main file",
			mods:    []*Module{{Name: "Geo", Kind: module.StaticLibrary}},
			wantMsg: "STATIC_LIBRARY requires a main file",
		},
		{
			name:    "executable without main file",
			mods:    []*Module{{Name: "App", Kind: module.Executable}},
			wantMsg: "EXECUTABLE requires a main file",
		},
		{
			name:    "duplicate name",
			mods:    []*Module{iface("Core"), iface("Core")},
			wantMsg: "declared twice",
		},
		{
			name:    "empty name",
			mods:    []*Module{iface("")},
			wantMsg: "empty name",
		},
		{
			name:    "depends on executable",
			mods:    []*Module{exe("Tool"), exe("App", "Tool")},
			wantMsg: "depends on executable Tool",
		},
		{
			name:    "two-module cycle",
			mods:    []*Module{lib("A", "B"), lib("B", "A")},
			wantMsg: "cycle A -> B -> A",
		},
		{
			name:    "self dependency",
			mods:    []*Module{iface("A", "A")},
			wantMsg: "cycle A -> A",
		},
		{
			name:    "cycle below an acyclic prefix",
			mods:    []*Module{exe("App", "A"), iface("A", "B"), iface("B", "C"), iface("C", "A")},
			wantMsg: "cycle A -> B -> C -> A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mods...)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("New() error = %v, want ErrConfiguration", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("New() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNew_DiamondIsNotACycle(t *testing.T) {
	_, err := New(iface("Core"), lib("A", "Core"), lib("B", "Core"), exe("App", "A", "B", "Core"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	c, err := New(iface("Core"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Get("Nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(Nope) error = %v, want ErrNotFound", err)
	}
}

func TestFilter(t *testing.T) {
	c, err := New(iface("Core"), lib("Geo", "Core"), exe("App", "Geo"), lib("Phys"), exe("Test", "Phys"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		kinds []module.Kind
		want  string
	}{
		{[]module.Kind{module.Executable}, "App Test"},
		{[]module.Kind{module.Executable, module.StaticLibrary}, "Geo App Phys Test"},
		{[]module.Kind{module.DynamicLibrary}, ""},
	}
	for _, tt := range tests {
		if got := strings.Join(c.Filter(tt.kinds...), " "); got != tt.want {
			t.Errorf("Filter(%v) = %q, want %q", tt.kinds, got, tt.want)
		}
	}
}

func TestNamesIsACopy(t *testing.T) {
	c, err := New(iface("A"), iface("B"))
	if err != nil {
		t.Fatal(err)
	}
	names := c.Names()
	names[0] = "Z"
	if !slices.Equal(c.Names(), []string{"A", "B"}) {
		t.Errorf("catalog order mutated through Names(): %v", c.Names())
	}
}

func TestLoad(t *testing.T) {
	cfg := &config.Config{
		Compiler: "GCC",
		Modules: []config.Module{
			{Name: "Core", Type: "INTERFACE", BuildType: "DEBUG", RootFolder: "src/Core",
				IncludeDirectories: []string{"inc/core"}},
			{Name: "Geo", Type: "STATIC_LIBRARY", BuildType: "RELEASE", RootFolder: "src/Geo",
				MainFile: "geo.c", IncludeDirectories: []string{"inc/geo"}, Dependencies: []string{"Core"}},
			{Name: "Dyn", Type: "DYNAMIC_LIBRARY", BuildType: "RELEASE_DEBUG", RootFolder: "src/Dyn"},
		},
	}
	root := filepath.Join("project", "root")

	c, err := Load(cfg, root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	core, _ := c.Get("Core")
	if core.MainFile != "" {
		t.Errorf("Core.MainFile = %q, want empty", core.MainFile)
	}
	if want := []string{filepath.Join(root, "inc/core")}; !slices.Equal(core.Includes, want) {
		t.Errorf("Core.Includes = %v, want %v", core.Includes, want)
	}

	geo, _ := c.Get("Geo")
	if geo.Variant != module.Release {
		t.Errorf("Geo.Variant = %v", geo.Variant)
	}
	if want := filepath.Join(root, "src/Geo"); geo.Root != want {
		t.Errorf("Geo.Root = %q, want %q", geo.Root, want)
	}
	if want := filepath.Join(root, "src/Geo", "geo.c"); geo.MainFile != want {
		t.Errorf("Geo.MainFile = %q, want %q", geo.MainFile, want)
	}
	if !slices.Equal(geo.Deps, []string{"Core"}) {
		t.Errorf("Geo.Deps = %v", geo.Deps)
	}

	dyn, _ := c.Get("Dyn")
	if dyn.Kind != module.DynamicLibrary {
		t.Errorf("Dyn.Kind = %v", dyn.Kind)
	}
}

func TestLoad_BadKindOrVariant(t *testing.T) {
	tests := []struct {
		name string
		mod  config.Module
	}{
		{"kind", config.Module{Name: "X", Type: "PLUGIN", BuildType: "DEBUG"}},
		{"variant", config.Module{Name: "X", Type: "INTERFACE", BuildType: "PROFILE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(&config.Config{Modules: []config.Module{tt.mod}}, "")
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("Load() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestLoad_DependencyListIsCopied(t *testing.T) {
	deps := []string{"Core"}
	cfg := &config.Config{Modules: []config.Module{
		{Name: "Core", Type: "INTERFACE", BuildType: "DEBUG"},
		{Name: "Api", Type: "INTERFACE", BuildType: "DEBUG", Dependencies: deps},
	}}
	c, err := Load(cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	deps[0] = "Other"
	api, _ := c.Get("Api")
	if api.Deps[0] != "Core" {
		t.Errorf("Api.Deps aliased the configuration slice: %v", api.Deps)
	}
}
