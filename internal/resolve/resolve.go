package resolve

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ldalzotto/EngineCPPRewrite/internal/modules"
	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
)

// ErrUnsupportedKind reports a declared module kind that cannot be built.
var ErrUnsupportedKind = errors.New("unsupported module kind")

// ActionKind is the kind of work an Action describes.
type ActionKind int

const (
	CompileObject ActionKind = iota
	ArchiveLibrary
	LinkExecutable
)

func (k ActionKind) String() string {
	switch k {
	case CompileObject:
		return "compile"
	case ArchiveLibrary:
		return "archive"
	case LinkExecutable:
		return "link"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Resolved holds the transitive build inputs of a module.
type Resolved struct {
	Includes []string
	Libs     []module.Lib
}

// Action is one compiler, archiver or linker invocation to synthesize.
type Action struct {
	Kind     ActionKind
	Module   *modules.Module
	Includes []string
	Libs     []module.Lib
}

func (a Action) String() string {
	return a.Kind.String() + "(" + a.Module.Name + ")"
}

type frame struct {
	name string
	next int // index of the next dependency to visit
}

// Resolver computes build actions for root modules of one catalog. The memo
// is owned by the Resolver and lives as long as it does; a Resolver is not
// safe for concurrent use.
type Resolver struct {
	catalog *modules.Catalog

	memo  map[string]Resolved
	stack []frame

	pending   []Action
	passStart int      // first pending action of the running pass
	added     []string // memo entries created by the running pass
}

// New returns a Resolver with an empty memo.
func New(catalog *modules.Catalog) *Resolver {
	return &Resolver{
		catalog: catalog,
		memo:    make(map[string]Resolved),
	}
}

// Resolve runs a full pass for root and returns the actions it emitted.
// Dependencies already resolved by an earlier pass emit nothing. On error
// the pass is discarded and no action is returned.
func (r *Resolver) Resolve(root string) ([]Action, error) {
	if err := r.Start(root); err != nil {
		return nil, err
	}
	for {
		more, err := r.Step()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return r.Take(), nil
}

// Start begins a pass for root. An unfinished pass is discarded first.
func (r *Resolver) Start(root string) error {
	if r.Busy() {
		r.abort()
	}
	r.passStart = len(r.pending)
	r.added = nil

	m, err := r.catalog.Get(root)
	if err != nil {
		return err
	}
	if _, done := r.memo[root]; done {
		return nil
	}
	if err := r.push(m); err != nil {
		r.abort()
		return err
	}
	return nil
}

// Step advances the running pass by one frame: it either pushes the next
// unvisited dependency of the top module or finishes that module. It
// reports whether the pass needs more steps.
func (r *Resolver) Step() (bool, error) {
	if !r.Busy() {
		return false, nil
	}
	top := &r.stack[len(r.stack)-1]
	m, err := r.catalog.Get(top.name)
	if err != nil {
		r.abort()
		return false, err
	}

	if top.next < len(m.Deps) {
		name := m.Deps[top.next]
		top.next++
		if _, done := r.memo[name]; done {
			return true, nil
		}
		dep, err := r.catalog.Get(name)
		if err != nil {
			r.abort()
			return false, err
		}
		if err := r.push(dep); err != nil {
			r.abort()
			return false, err
		}
		return true, nil
	}

	if err := r.finish(m); err != nil {
		r.abort()
		return false, err
	}
	r.stack = r.stack[:len(r.stack)-1]
	if !r.Busy() {
		r.added = nil
		r.passStart = len(r.pending)
	}
	return r.Busy(), nil
}

// Busy reports whether a pass is running.
func (r *Resolver) Busy() bool {
	return len(r.stack) > 0
}

// Take returns and clears the actions of every completed pass. Actions of a
// running pass are never returned.
func (r *Resolver) Take() []Action {
	done := r.pending[:r.passStart]
	r.pending = slices.Clone(r.pending[r.passStart:])
	r.passStart = 0
	if len(done) == 0 {
		return nil
	}
	return done
}

// Resolved returns the memoized inputs of an interface or static library
// finished by this Resolver.
func (r *Resolver) Resolved(name string) (Resolved, bool) {
	res, ok := r.memo[name]
	if !ok {
		return Resolved{}, false
	}
	return Resolved{Includes: slices.Clone(res.Includes), Libs: slices.Clone(res.Libs)}, true
}

func (r *Resolver) push(m *modules.Module) error {
	switch m.Kind {
	case module.Interface, module.StaticLibrary, module.Executable:
	case module.DynamicLibrary:
		return fmt.Errorf("%w: %s is a %v", ErrUnsupportedKind, m.Name, m.Kind)
	default:
		return fmt.Errorf("%w: %s has kind %v", ErrUnsupportedKind, m.Name, m.Kind)
	}
	if m.Kind.RequiresMainFile() && m.MainFile == "" {
		return fmt.Errorf("%w: module %s: %v requires a main file", modules.ErrConfiguration, m.Name, m.Kind)
	}
	r.stack = append(r.stack, frame{name: m.Name})
	return nil
}

// finish computes the resolved inputs of m, whose dependencies are all
// memoized, and emits its actions.
func (r *Resolver) finish(m *modules.Module) error {
	var res Resolved
	for _, name := range m.Deps {
		dep, ok := r.memo[name]
		if !ok {
			return fmt.Errorf("resolve %s: dependency %s not resolved", m.Name, name)
		}
		res.Includes = append(res.Includes, dep.Includes...)
		res.Libs = append(res.Libs, dep.Libs...)
	}
	res.Includes = dedupe(append(res.Includes, m.Includes...))
	res.Libs = dedupe(res.Libs)

	switch m.Kind {
	case module.Interface:
		r.remember(m.Name, res)
	case module.StaticLibrary:
		r.emit(CompileObject, m, res)
		r.emit(ArchiveLibrary, m, res)
		r.remember(m.Name, Resolved{
			Includes: res.Includes,
			Libs:     dedupe(append(slices.Clone(res.Libs), m.Lib())),
		})
	case module.Executable:
		r.emit(LinkExecutable, m, res)
	case module.DynamicLibrary:
		return fmt.Errorf("%w: %s is a %v", ErrUnsupportedKind, m.Name, m.Kind)
	default:
		return fmt.Errorf("%w: %s has kind %v", ErrUnsupportedKind, m.Name, m.Kind)
	}
	return nil
}

func (r *Resolver) emit(kind ActionKind, m *modules.Module, res Resolved) {
	r.pending = append(r.pending, Action{
		Kind:     kind,
		Module:   m,
		Includes: slices.Clone(res.Includes),
		Libs:     slices.Clone(res.Libs),
	})
}

func (r *Resolver) remember(name string, res Resolved) {
	r.memo[name] = res
	r.added = append(r.added, name)
}

// abort discards the running pass: its frames, its actions and the memo
// entries it created.
func (r *Resolver) abort() {
	for _, name := range r.added {
		delete(r.memo, name)
	}
	r.added = nil
	r.stack = nil
	r.pending = r.pending[:r.passStart]
}

func dedupe[T comparable](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
