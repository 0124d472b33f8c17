// Package compiledb writes the JSON compilation database consumed by C/C++
// editor tooling (compile_commands.json).
package compiledb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ldalzotto/EngineCPPRewrite/internal/command"
)

// FileName is the conventional database name inside the build directory.
const FileName = "compile_commands.json"

// ErrWrite reports a database that could not be written.
var ErrWrite = errors.New("write compile database")

// Entry is one compilation database record.
type Entry struct {
	Directory string `json:"directory"`
	Command   string `json:"command"`
	File      string `json:"file"`
}

// Entries converts cmds into records run from directory, keeping their order.
func Entries(directory string, cmds []command.Command) []Entry {
	entries := make([]Entry, 0, len(cmds))
	for _, c := range cmds {
		entries = append(entries, Entry{Directory: directory, Command: c.Line, File: c.File})
	}
	return entries
}

// Write replaces the database at path with one record per command.
func Write(path, directory string, cmds []command.Command) error {
	data, err := json.MarshalIndent(Entries(directory, cmds), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
