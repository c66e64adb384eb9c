// Package doctor inspects the shell's environment: HOME, the PATH
// search directories, and the terminal. It backs `gosh doctor`.
package doctor

import (
	"os"
	"sync"

	"github.com/toba/gosh/internal/builtin"
	"github.com/toba/gosh/internal/lookup"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// PathDir describes one PATH search directory.
type PathDir struct {
	Dir         string `json:"dir"`
	Exists      bool   `json:"exists"`
	Readable    bool   `json:"readable"`
	Executables int    `json:"executables"`
}

// Report is the full environment health report.
type Report struct {
	Home     string    `json:"home"`
	HomeSet  bool      `json:"home_set"`
	PathDirs []PathDir `json:"path_dirs"`
	Terminal bool      `json:"terminal"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
	Builtins []string  `json:"builtins"`
}

// Healthy reports whether the shell can operate normally: a home
// directory for cd and at least one usable PATH directory.
func (r Report) Healthy() bool {
	if !r.HomeSet {
		return false
	}
	for _, d := range r.PathDirs {
		if d.Readable {
			return true
		}
	}
	return false
}

// Collect gathers the report. PATH directory scans are independent, so
// they run concurrently.
func Collect() Report {
	home := os.Getenv("HOME")
	r := Report{
		Home:     home,
		HomeSet:  home != "",
		Builtins: builtin.Names(),
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		r.Terminal = true
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			r.Width, r.Height = w, h
		}
	}

	dirs := lookup.Dirs()
	r.PathDirs = make([]PathDir, len(dirs))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(8)
	for i, dir := range dirs {
		g.Go(func() error {
			d := scanDir(dir)
			mu.Lock()
			r.PathDirs[i] = d
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck // scans never error

	return r
}

// scanDir checks one PATH directory and counts its executables.
func scanDir(dir string) PathDir {
	d := PathDir{Dir: dir}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return d
	}
	d.Exists = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return d
	}
	d.Readable = true
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			if fi, err := entry.Info(); err == nil && fi.Mode().Perm()&0o111 != 0 {
				d.Executables++
			}
		}
	}
	return d
}
