package toolchain

import (
	"path/filepath"
	"strings"

	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
)

func init() {
	register(gcc{})
}

// gcc is the GNU toolchain: gcc driver, ar archiver, GNU ld.
type gcc struct{}

func (gcc) Name() string         { return "GCC" }
func (gcc) Compiler() string     { return "gcc" }
func (gcc) Warnings() string     { return "-Wall" }
func (gcc) DebugSymbols() string { return "-g" }

func (gcc) Optimization(v module.Variant) string {
	switch v {
	case module.Debug:
		return "-O0"
	case module.ReleaseDebug, module.Release:
		return "-O2"
	}
	return ""
}

// Quote single-quotes path for sh when it holds anything but plain
// path characters.
func (gcc) Quote(path string) string {
	if strings.IndexFunc(path, shellUnsafe) < 0 {
		return path
	}
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

func shellUnsafe(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return false
	case strings.ContainsRune("_-./:=+,@%", r):
		return false
	}
	return true
}

func (g gcc) IncludeDir(dir string) string { return "-I" + g.Quote(dir) }

func (g gcc) Define(name, value string) string { return "-D " + g.Quote(name+"="+value) }

func (gcc) CompileObject() string { return "-c" }

func (g gcc) ObjectOutput(file string) string     { return "-o " + g.Quote(file) }
func (g gcc) ExecutableOutput(file string) string { return "-o " + g.Quote(file) }

// LinkLibraries links archives by file name (-l:) so they keep the
// "<name>_<variant>.a" layout. Several archives are grouped so that GNU ld
// rescans them regardless of their dependency-first order.
func (g gcc) LinkLibraries(dir string, libs []module.Lib) []string {
	if len(libs) == 0 {
		return nil
	}
	tokens := []string{"-L" + g.Quote(dir)}
	if len(libs) > 1 {
		tokens = append(tokens, "-Wl,--start-group")
	}
	for _, lib := range libs {
		tokens = append(tokens, g.Quote("-l:"+lib.String()+g.LibraryExt()))
	}
	if len(libs) > 1 {
		tokens = append(tokens, "-Wl,--end-group")
	}
	return tokens
}

func (gcc) MathLibrary() string { return "-lm" }

func (g gcc) Archive(lib, obj string) []string {
	return []string{"ar", "rcs", g.Quote(filepath.Clean(lib)), g.Quote(filepath.Clean(obj))}
}

func (gcc) ObjectExt() string  { return ".o" }
func (gcc) LibraryExt() string { return ".a" }
