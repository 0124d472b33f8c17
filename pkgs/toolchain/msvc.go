package toolchain

import (
	"path/filepath"
	"strings"

	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
)

func init() {
	register(msvc{})
}

// msvc is the Microsoft toolchain: cl driver, lib archiver.
type msvc struct{}

func (msvc) Name() string         { return "MSVC" }
func (msvc) Compiler() string     { return "cl /nologo" }
func (msvc) Warnings() string     { return "" }
func (msvc) DebugSymbols() string { return "/Zi" }

func (msvc) Optimization(v module.Variant) string {
	switch v {
	case module.Debug:
		return ""
	case module.ReleaseDebug, module.Release:
		return "/O2"
	}
	return ""
}

// Quote wraps path in double quotes. Trailing backslashes are doubled so
// the closing quote is not escaped.
func (msvc) Quote(path string) string {
	if path == "" {
		return ""
	}
	trimmed := strings.TrimRight(path, `\`)
	return `"` + path + strings.Repeat(`\`, len(path)-len(trimmed)) + `"`
}

func (m msvc) IncludeDir(dir string) string { return "/I" + m.Quote(dir) }

func (msvc) Define(name, value string) string { return `/D"` + name + "=" + value + `"` }

func (msvc) CompileObject() string { return "/c" }

func (m msvc) ObjectOutput(file string) string     { return "/Fo" + m.Quote(file) }
func (m msvc) ExecutableOutput(file string) string { return "/Fe" + m.Quote(file) }

// LinkLibraries passes every archive to cl by path.
func (m msvc) LinkLibraries(dir string, libs []module.Lib) []string {
	tokens := make([]string, 0, len(libs))
	for _, lib := range libs {
		tokens = append(tokens, m.Quote(filepath.Join(dir, lib.String()+m.LibraryExt())))
	}
	return tokens
}

func (msvc) MathLibrary() string { return "" }

func (m msvc) Archive(lib, obj string) []string {
	return []string{"lib /nologo", m.Quote(filepath.Clean(obj)), "/OUT:" + m.Quote(filepath.Clean(lib))}
}

func (msvc) ObjectExt() string  { return ".obj" }
func (msvc) LibraryExt() string { return ".lib" }
