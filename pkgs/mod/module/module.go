// Package module holds the vocabulary shared by the catalog, the resolver and
// the toolchains: module kinds, build variants and built-library identities.
package module

import "fmt"

// Kind classifies a declared module.
type Kind int

const (
	Interface Kind = iota
	StaticLibrary
	Executable
	DynamicLibrary
)

var kindNames = [...]string{
	Interface:      "INTERFACE",
	StaticLibrary:  "STATIC_LIBRARY",
	Executable:     "EXECUTABLE",
	DynamicLibrary: "DYNAMIC_LIBRARY",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// RequiresMainFile reports whether modules of kind k must declare a main file.
func (k Kind) RequiresMainFile() bool {
	return k == StaticLibrary || k == Executable
}

// ParseKind parses the configuration spelling of a module kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown module kind %q", s)
}

// Variant selects the optimization and debug-symbol policy of a build.
type Variant int

const (
	Debug Variant = iota
	ReleaseDebug
	Release
)

var variantNames = [...]string{
	Debug:        "DEBUG",
	ReleaseDebug: "RELEASE_DEBUG",
	Release:      "RELEASE",
}

// Variants lists every build variant in declaration order.
var Variants = []Variant{Debug, ReleaseDebug, Release}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// DebugSymbols reports whether builds of variant v carry debug information.
func (v Variant) DebugSymbols() bool {
	return v == Debug || v == ReleaseDebug
}

// ParseVariant parses the configuration spelling of a build variant.
func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if name == s {
			return Variant(v), nil
		}
	}
	return 0, fmt.Errorf("unknown build variant %q", s)
}

// Lib identifies a static library built from a module with a given variant.
type Lib struct {
	Name    string
	Variant Variant
}

// String returns the artifact base name, "<name>_<variant>".
func (l Lib) String() string {
	return l.Name + "_" + l.Variant.String()
}
