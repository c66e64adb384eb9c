// Package lookup resolves command names against the PATH environment
// variable and enumerates path-resident executables for completion.
package lookup

import (
	"os"
	"path/filepath"
	"strings"
)

// Dirs returns the PATH directories in search order, skipping empty
// segments.
func Dirs() []string {
	var dirs []string
	for dir := range strings.SplitSeq(os.Getenv("PATH"), ":") {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Find resolves a command name to an absolute executable path using
// PATH order. Names containing a path separator are not resolved here;
// they are handed to process spawn as given.
func Find(name string) (string, bool) {
	if strings.Contains(name, "/") {
		return "", false
	}
	for _, dir := range Dirs() {
		candidate := filepath.Join(dir, name)
		if isExecutableFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Resolve returns the path to spawn for a command name: PATH search for
// bare names, the name itself (checked directly) when it contains a
// path separator.
func Resolve(name string) (string, bool) {
	if strings.Contains(name, "/") {
		return name, isExecutableFile(name)
	}
	return Find(name)
}

// Executables returns the union of executable regular-file names across
// all PATH directories. Unreadable directories are skipped.
func Executables() []string {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range Dirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if seen[name] {
				continue
			}
			if isExecutableFile(filepath.Join(dir, name)) {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// isExecutableFile reports whether path is a regular file executable by
// the current user.
func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
