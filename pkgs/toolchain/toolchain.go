package toolchain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
)

// Flags captures the token vocabulary of a native toolchain (GCC, MSVC).
// Every method is a pure lookup; an empty string means the toolchain has no
// token for that request and callers drop it.
type Flags interface {
	// Name is the configuration spelling of the toolchain, e.g. "GCC".
	Name() string

	// Compiler driver and the flags it always takes.
	Compiler() string
	Warnings() string
	DebugSymbols() string
	Optimization(v module.Variant) string

	// Quote renders path as one argument of the toolchain's command line.
	Quote(path string) string

	// Per-input flags.
	IncludeDir(dir string) string
	Define(name, value string) string

	// Outputs.
	CompileObject() string
	ObjectOutput(file string) string
	ExecutableOutput(file string) string

	// Linking.
	LinkLibraries(dir string, libs []module.Lib) []string
	MathLibrary() string

	// Archive returns the full command tokens packaging obj into lib.
	Archive(lib, obj string) []string

	// Artifact extensions, including the leading dot.
	ObjectExt() string
	LibraryExt() string
}

var registry = map[string]Flags{}

func register(f Flags) {
	registry[f.Name()] = f
}

// For returns the flag table for the named toolchain.
func For(name string) (Flags, error) {
	f, ok := registry[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown compiler %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the supported toolchain names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Join renders tokens as a single command line, dropping empty tokens.
func Join(tokens ...string) string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return strings.Join(out, " ")
}
