// Package command turns resolver actions into concrete toolchain command
// lines. It holds no resolution logic: every input of a command comes from
// the action it is built from.
package command

import (
	"fmt"
	"path/filepath"

	"github.com/ldalzotto/EngineCPPRewrite/internal/config"
	"github.com/ldalzotto/EngineCPPRewrite/internal/modules"
	"github.com/ldalzotto/EngineCPPRewrite/internal/resolve"
	"github.com/ldalzotto/EngineCPPRewrite/pkgs/mod/module"
	"github.com/ldalzotto/EngineCPPRewrite/pkgs/toolchain"
)

// ExecutableExt is the extension of linked executables, for every toolchain.
const ExecutableExt = ".exe"

// Command is one rendered command line and the source file it concerns.
type Command struct {
	Line string
	File string
}

func (c Command) String() string {
	return c.Line
}

// Synthesizer renders actions with one toolchain into one build directory.
type Synthesizer struct {
	flags    toolchain.Flags
	buildDir string
	defines  map[module.Variant][]config.Define
}

// NewSynthesizer returns a Synthesizer. defines holds the preprocessor
// defines of each variant; a missing variant has none.
func NewSynthesizer(flags toolchain.Flags, buildDir string, defines map[module.Variant][]config.Define) *Synthesizer {
	return &Synthesizer{flags: flags, buildDir: buildDir, defines: defines}
}

// Synthesize returns the commands for a.
func (s *Synthesizer) Synthesize(a resolve.Action) ([]Command, error) {
	m := a.Module
	if m == nil {
		return nil, fmt.Errorf("synthesize %v: action has no module", a.Kind)
	}
	switch a.Kind {
	case resolve.CompileObject:
		tokens := []string{s.flags.Compiler(), s.flags.CompileObject()}
		tokens = append(tokens, s.common(m, a.Includes)...)
		tokens = append(tokens, s.flags.ObjectOutput(s.Object(m)))
		return []Command{{Line: toolchain.Join(tokens...), File: m.MainFile}}, nil
	case resolve.ArchiveLibrary:
		tokens := s.flags.Archive(s.Library(m), s.Object(m))
		return []Command{{Line: toolchain.Join(tokens...), File: m.MainFile}}, nil
	case resolve.LinkExecutable:
		tokens := []string{s.flags.Compiler()}
		tokens = append(tokens, s.common(m, a.Includes)...)
		tokens = append(tokens, s.flags.ExecutableOutput(s.Executable(m)))
		tokens = append(tokens, s.flags.LinkLibraries(s.buildDir, a.Libs)...)
		tokens = append(tokens, s.flags.MathLibrary())
		return []Command{{Line: toolchain.Join(tokens...), File: m.MainFile}}, nil
	}
	return nil, fmt.Errorf("synthesize %s: unknown action %v", m.Name, a.Kind)
}

// SynthesizeAll returns the commands of every action, in action order.
func (s *Synthesizer) SynthesizeAll(actions []resolve.Action) ([]Command, error) {
	var cmds []Command
	for _, a := range actions {
		c, err := s.Synthesize(a)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c...)
	}
	return cmds, nil
}

// Object returns the object file m compiles to.
func (s *Synthesizer) Object(m *modules.Module) string {
	return s.artifact(m, s.flags.ObjectExt())
}

// Library returns the archive m builds to.
func (s *Synthesizer) Library(m *modules.Module) string {
	return s.artifact(m, s.flags.LibraryExt())
}

// Executable returns the executable m links to.
func (s *Synthesizer) Executable(m *modules.Module) string {
	return s.artifact(m, ExecutableExt)
}

func (s *Synthesizer) artifact(m *modules.Module, ext string) string {
	return filepath.Join(s.buildDir, m.Lib().String()+ext)
}

// common returns the tokens shared by compile and link commands: warnings,
// debug symbols, optimization, defines, the main file and include flags.
func (s *Synthesizer) common(m *modules.Module, includes []string) []string {
	tokens := []string{s.flags.Warnings()}
	if m.Variant.DebugSymbols() {
		tokens = append(tokens, s.flags.DebugSymbols())
	}
	tokens = append(tokens, s.flags.Optimization(m.Variant))
	for _, d := range s.defines[m.Variant] {
		tokens = append(tokens, s.flags.Define(d.Name, d.Value))
	}
	tokens = append(tokens, s.flags.Quote(m.MainFile))
	for _, dir := range includes {
		tokens = append(tokens, s.flags.IncludeDir(dir))
	}
	return tokens
}
