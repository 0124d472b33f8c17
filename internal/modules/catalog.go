package modules

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ldalzotto/EngineCPPRewrite/internal/config"
	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
)

var (
	// ErrConfiguration reports a bad, incomplete or cyclic module graph.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound reports a module name absent from the catalog.
	ErrNotFound = errors.New("module not found")
)

// Module is a validated build unit.
type Module struct {
	Name    string
	Kind    module.Kind
	Variant module.Variant

	Root     string // source root
	MainFile string // empty for interfaces

	Includes []string // own include directories, declaration order
	Deps     []string // dependency names, declaration order
}

// Lib returns the library identity the module builds to.
func (m *Module) Lib() module.Lib {
	return module.Lib{Name: m.Name, Variant: m.Variant}
}

// Catalog is an immutable, name-keyed view of all declared modules.
type Catalog struct {
	mods  map[string]*Module
	order []string
}

// Load converts a configuration document into a validated catalog. Relative
// paths are anchored at root the way the configuration declares them: the
// source root and include directories relative to root, the main file
// relative to the source root.
func Load(cfg *config.Config, root string) (*Catalog, error) {
	mods := make([]*Module, 0, len(cfg.Modules))
	for _, raw := range cfg.Modules {
		kind, err := module.ParseKind(raw.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: module %s: %v", ErrConfiguration, raw.Name, err)
		}
		variant, err := module.ParseVariant(raw.BuildType)
		if err != nil {
			return nil, fmt.Errorf("%w: module %s: %v", ErrConfiguration, raw.Name, err)
		}
		m := &Module{
			Name:    raw.Name,
			Kind:    kind,
			Variant: variant,
			Root:    filepath.Join(root, raw.RootFolder),
			Deps:    slices.Clone(raw.Dependencies),
		}
		if raw.MainFile != "" {
			m.MainFile = filepath.Join(m.Root, raw.MainFile)
		}
		for _, dir := range raw.IncludeDirectories {
			m.Includes = append(m.Includes, filepath.Join(root, dir))
		}
		mods = append(mods, m)
	}
	return New(mods...)
}

// New builds a catalog from already-typed modules, in the given order.
func New(mods ...*Module) (*Catalog, error) {
	c := &Catalog{
		mods:  make(map[string]*Module, len(mods)),
		order: make([]string, 0, len(mods)),
	}
	for _, m := range mods {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: module with empty name", ErrConfiguration)
		}
		if _, dup := c.mods[m.Name]; dup {
			return nil, fmt.Errorf("%w: module %s declared twice", ErrConfiguration, m.Name)
		}
		if m.Kind.RequiresMainFile() && m.MainFile == "" {
			return nil, fmt.Errorf("%w: module %s: %v requires a main file", ErrConfiguration, m.Name, m.Kind)
		}
		c.mods[m.Name] = m
		c.order = append(c.order, m.Name)
	}
	for _, name := range c.order {
		m := c.mods[name]
		for _, dep := range m.Deps {
			d, ok := c.mods[dep]
			if !ok {
				return nil, fmt.Errorf("%w: dependency %s referenced by %s not declared", ErrConfiguration, dep, m.Name)
			}
			if d.Kind == module.Executable {
				return nil, fmt.Errorf("%w: module %s depends on executable %s", ErrConfiguration, m.Name, dep)
			}
		}
	}
	if cycle := c.findCycle(); cycle != nil {
		return nil, fmt.Errorf("%w: dependency cycle %s", ErrConfiguration, strings.Join(cycle, " -> "))
	}
	return c, nil
}

// Get returns the module called name.
func (c *Catalog) Get(name string) (*Module, error) {
	m, ok := c.mods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return m, nil
}

// Names returns every module name in configuration order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.order)
}

// Filter returns the names of modules of the given kinds, in configuration order.
func (c *Catalog) Filter(kinds ...module.Kind) []string {
	var names []string
	for _, name := range c.order {
		if slices.Contains(kinds, c.mods[name].Kind) {
			names = append(names, name)
		}
	}
	return names
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.order)
}

// findCycle walks the graph depth-first from every module, in configuration
// order, and returns the first cycle found as a path whose first and last
// elements are the same module. It returns nil for an acyclic graph.
func (c *Catalog) findCycle() []string {
	const (
		white = iota
		gray
		black
	)
	type frame struct {
		name string
		next int
	}
	color := make(map[string]int, len(c.order))

	for _, start := range c.order {
		if color[start] != white {
			continue
		}
		stack := []frame{{name: start}}
		color[start] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := c.mods[top.name].Deps
			if top.next == len(deps) {
				color[top.name] = black
				stack = stack[:len(stack)-1]
				continue
			}
			dep := deps[top.next]
			top.next++
			switch color[dep] {
			case white:
				color[dep] = gray
				stack = append(stack, frame{name: dep})
			case gray:
				var path []string
				for i := len(stack) - 1; i >= 0; i-- {
					path = append(path, stack[i].name)
					if stack[i].name == dep {
						break
					}
				}
				slices.Reverse(path)
				return append(path, dep)
			}
		}
	}
	return nil
}
