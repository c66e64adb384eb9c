// Package builtin implements the shell's built-in commands: exit, echo,
// type, pwd, cd, and history. Built-ins run in-process and share shell
// state through State.
package builtin

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/toba/gosh/internal/history"
	"github.com/toba/gosh/internal/lookup"
	"github.com/toba/gosh/internal/shell"
)

// ExitError is a sentinel error type that carries a process exit code.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// State is the shell state a built-in can observe. Out receives built-in
// output and diagnostics when no redirection applies.
type State struct {
	History *history.List
	Out     io.Writer
}

// Handler runs a built-in with its argument tail (command name excluded)
// and the stage's redirection plan. A returned ExitError terminates the
// REPL; any other error is a diagnostic already printed.
type Handler func(s *State, args []string, redir shell.Redirections) error

// names lists the built-ins in registry order. This is the reference
// list used by `type` and the completion engine.
var names = []string{"exit", "echo", "type", "pwd", "cd", "history"}

var registry = map[string]Handler{
	"exit":    runExit,
	"echo":    runEcho,
	"type":    runType,
	"pwd":     runPwd,
	"cd":      runCd,
	"history": runHistory,
}

// Lookup returns the handler for an exact built-in name.
func Lookup(name string) (Handler, bool) {
	h, ok := registry[name]
	return h, ok
}

// Is reports whether name is a shell built-in.
func Is(name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns the built-in names in registry order.
func Names() []string {
	return names
}

// WriteResult writes text to the redirection target when path is set,
// creating or appending per the flag, and to fallback otherwise. A file
// write failure surfaces as a single diagnostic on fallback.
func WriteResult(fallback io.Writer, path string, appendTo bool, text string) {
	if path == "" {
		io.WriteString(fallback, text) //nolint:errcheck // terminal write
		return
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendTo {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		fmt.Fprintf(fallback, "Error: %v\n", err)
		return
	}
	defer f.Close()
	if _, err := io.WriteString(f, text); err != nil {
		fmt.Fprintf(fallback, "Error: %v\n", err)
	}
}

func runExit(s *State, args []string, redir shell.Redirections) error {
	code := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			code = n
		}
	}
	return ExitError{Code: code}
}

func runEcho(s *State, args []string, redir shell.Redirections) error {
	WriteResult(s.Out, redir.Stdout, redir.AppendStdout, strings.Join(args, " ")+"\n")
	return nil
}

func runType(s *State, args []string, redir shell.Redirections) error {
	if len(args) == 0 {
		return nil
	}
	query := args[0]
	switch {
	case Is(query):
		fmt.Fprintf(s.Out, "%s is a shell builtin\n", query)
	default:
		if path, ok := lookup.Find(query); ok {
			fmt.Fprintf(s.Out, "%s is %s\n", query, path)
		} else {
			fmt.Fprintf(s.Out, "%s not found\n", query)
		}
	}
	return nil
}

func runPwd(s *State, args []string, redir shell.Redirections) error {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(s.Out, "Error: %v\n", err)
		return nil
	}
	fmt.Fprintln(s.Out, wd)
	return nil
}

func runCd(s *State, args []string, redir shell.Redirections) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	dir := target
	if target == "" || target == "~" {
		dir = homeDir()
	}
	if err := os.Chdir(dir); err != nil {
		shown := cmp.Or(target, dir)
		fmt.Fprintf(s.Out, "cd: %s: No such file or directory\n", shown)
	}
	return nil
}

func runHistory(s *State, args []string, redir shell.Redirections) error {
	entries := s.History.All()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(s.Out, "history: %s: numeric argument required\n", args[0])
			return nil
		}
		entries = s.History.Last(n)
	}
	for _, e := range entries {
		fmt.Fprintf(s.Out, "%d %s\n", e.Index, e.Line)
	}
	return nil
}

// homeDir resolves the user's home directory, preferring $HOME.
func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/"
	}
	return home
}
