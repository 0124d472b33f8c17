package compiledb

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ldalzotto/EngineCPPRewrite/internal/command"
)

// read loads the database at path.
func read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func TestWriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build")
	path := filepath.Join(dir, FileName)
	cmds := []command.Command{
		{Line: "gcc -c geo.c -o build/Geo_DEBUG.o", File: "geo.c"},
		{Line: "ar rcs build/Geo_DEBUG.a build/Geo_DEBUG.o", File: "geo.c"},
		{Line: "gcc main.c -o build/App_DEBUG.exe", File: "main.c"},
	}

	if err := Write(path, dir, cmds); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []Entry{
		{Directory: dir, Command: cmds[0].Line, File: "geo.c"},
		{Directory: dir, Command: cmds[1].Line, File: "geo.c"},
		{Directory: dir, Command: cmds[2].Line, File: "main.c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Write(path, "b", []command.Command{{Line: "a", File: "a.c"}, {Line: "b", File: "b.c"}}); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, "b", []command.Command{{Line: "c", File: "c.c"}}); err != nil {
		t.Fatal(err)
	}
	got, err := read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].File != "c.c" {
		t.Errorf("database not replaced: %+v", got)
	}
}

func TestWrite_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Write(path, "b", nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("empty database = %q, want []", data)
	}
}

func TestWrite_Error(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := Write(filepath.Join(blocker, "sub", FileName), "b", nil)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Write error = %v, want ErrWrite", err)
	}
}
