package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ldalzotto/EngineCPPRewrite/internal/command"
)

// Build directory layout:
//
//	buildDir/
//	  <name>_<variant>.o|.obj         # objects
//	  <name>_<variant>.a|.lib         # archives
//	  <name>_<variant>.exe            # executables
//	  compile_commands.json           # compile database
//	  .build-report.json              # last build: target, commands, timings
//
// The report is informational; it is never read back to skip work.
const reportFile = ".build-report.json"

// reportEntry records one executed command.
type reportEntry struct {
	Command string  `json:"command"`
	File    string  `json:"file"`
	Seconds float64 `json:"seconds"`
	OK      bool    `json:"ok"`
	Error   string  `json:"error,omitempty"`
}

// buildReport describes the last build run in a build directory.
type buildReport struct {
	Target    string         `json:"target"`
	Compiler  string         `json:"compiler"`
	StartTime time.Time      `json:"start_time"`
	Commands  []*reportEntry `json:"commands"`
}

func newReport(target, compiler string) *buildReport {
	return &buildReport{Target: target, Compiler: compiler, StartTime: time.Now(), Commands: []*reportEntry{}}
}

func (r *buildReport) add(c command.Command, d time.Duration, err error) {
	e := &reportEntry{Command: c.Line, File: c.File, Seconds: d.Seconds(), OK: err == nil}
	if err != nil {
		e.Error = err.Error()
	}
	r.Commands = append(r.Commands, e)
}

func saveReport(path string, r *buildReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
