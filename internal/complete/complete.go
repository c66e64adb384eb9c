// Package complete implements tab completion over built-in names and
// path-resident executables, with the two-tab disambiguation protocol:
// the first tab extends to the common prefix or rings the bell, the
// second lists the candidates.
package complete

import (
	"sort"
	"strings"

	"github.com/toba/gosh/internal/builtin"
)

// Result tells the line editor how to react to a completion request.
type Result struct {
	Text string   // replacement text when OK
	OK   bool     // a completion or prefix extension is available
	Bell bool     // ring the terminal bell
	List []string // sorted candidates to display (second tab)
}

// Engine holds the completion state shared across consecutive tab
// presses. It is owned by the REPL and captured by the completion
// callback; state resets whenever the prefix changes.
type Engine struct {
	lastPrefix  string
	lastMatches []string
	tabCount    int
	executables func() []string
}

// NewEngine returns an Engine drawing external candidates from the
// given enumerator (typically a Cache).
func NewEngine(executables func() []string) *Engine {
	return &Engine{executables: executables}
}

// Complete answers one completion request. state is 0 on the first call
// for a given prefix and increments on retries, mirroring the readline
// contract.
func (e *Engine) Complete(prefix string, state int) Result {
	if prefix == "" {
		return Result{}
	}

	if prefix != e.lastPrefix {
		e.lastMatches = e.matches(prefix)
		e.lastPrefix = prefix
		e.tabCount = 1
	} else {
		e.tabCount++
	}

	switch len(e.lastMatches) {
	case 0:
		return Result{}
	case 1:
		if state == 0 {
			return Result{Text: e.lastMatches[0] + " ", OK: true}
		}
		return Result{}
	}

	if e.tabCount == 1 {
		if state != 0 {
			return Result{}
		}
		if common := commonPrefix(e.lastMatches); len(common) > len(prefix) {
			return Result{Text: common, OK: true}
		}
		return Result{Bell: true}
	}

	// Second tab and beyond: list the candidates once per press.
	if state == 0 {
		listed := make([]string, len(e.lastMatches))
		copy(listed, e.lastMatches)
		sort.Strings(listed)
		return Result{List: listed}
	}
	return Result{}
}

// matches returns the deduplicated union of built-ins and PATH
// executables starting with prefix.
func (e *Engine) matches(prefix string) []string {
	seen := make(map[string]bool)
	var all []string
	add := func(name string) {
		if !seen[name] && strings.HasPrefix(name, prefix) {
			seen[name] = true
			all = append(all, name)
		}
	}
	for _, name := range builtin.Names() {
		add(name)
	}
	if e.executables != nil {
		for _, name := range e.executables() {
			add(name)
		}
	}
	return all
}

// commonPrefix returns the longest prefix shared by all candidates.
func commonPrefix(names []string) string {
	prefix := names[0]
	for _, name := range names[1:] {
		for !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
