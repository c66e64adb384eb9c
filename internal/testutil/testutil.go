// Package testutil holds small helpers shared by gosh tests, which are
// heavy on working-directory changes and redirection-file assertions.
package testutil

import (
	"os"
	"testing"
)

// Chdir switches the working directory for the duration of the test.
// The shell's cwd is process-wide state, so tests that touch cd or pwd
// must restore it.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) }) //nolint:errcheck // best-effort cleanup
}

// ReadFile returns the file's contents, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test helper
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
