package testenv

import (
	"os"
	"path"
	"testing"
)

// TempName creates a filename in a temporary directory.
// The directory and contained files are automatically deleted during cleanup.
func TempName(t testing.TB, name ...string) (filename string) {
	filename = "temp"
	if len(name) > 0 {
		filename = name[0]
	}
	return path.Join(t.TempDir(), filename)
}

// WriteTemp writes content to a file in a temporary directory and returns its name.
func WriteTemp(t testing.TB, name, content string) (filename string) {
	filename = TempName(t, name)
	if e := os.WriteFile(filename, []byte(content), 0o644); e != nil {
		t.Fatal(e)
	}
	return filename
}
