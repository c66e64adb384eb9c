// Package repl runs the shell's read-eval loop: prompt, line editing
// with tab completion on a terminal, history recording, and dispatch to
// the executor.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/toba/gosh/internal/builtin"
	"github.com/toba/gosh/internal/complete"
	"github.com/toba/gosh/internal/config"
	"github.com/toba/gosh/internal/history"
	"github.com/toba/gosh/internal/run"
	"golang.org/x/term"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

// REPL owns the shell session state: history, completion, executor, and
// the terminal streams.
type REPL struct {
	cfg    *config.Config
	hist   *history.List
	shell  *run.Shell
	engine *complete.Engine
	cache  *complete.Cache
	stdin  *os.File
	stdout *os.File
}

// New builds a session reading from stdin and writing to stdout.
func New(cfg *config.Config) *REPL {
	return newREPL(cfg, os.Stdin, os.Stdout)
}

func newREPL(cfg *config.Config, stdin, stdout *os.File) *REPL {
	hist := &history.List{}
	state := &builtin.State{History: hist, Out: stdout}
	sh := run.New(state, stdin, stdout)
	sh.Timeout = cfg.Timeout()

	cache := complete.NewCache()
	return &REPL{
		cfg:    cfg,
		hist:   hist,
		shell:  sh,
		engine: complete.NewEngine(cache.Executables),
		cache:  cache,
		stdin:  stdin,
		stdout: stdout,
	}
}

// Run executes the loop until exit or EOF. EOF returns nil; the exit
// built-in returns its ExitError, whatever the status.
func (r *REPL) Run() error {
	defer r.cache.Close()
	if term.IsTerminal(int(r.stdin.Fd())) {
		return r.runTerminal()
	}
	return r.runPlain()
}

// runPlain reads lines without line editing or completion, for scripted
// and piped input.
func (r *REPL) runPlain() error {
	scanner := bufio.NewScanner(r.stdin)
	for {
		fmt.Fprint(r.stdout, r.prompt())
		if !scanner.Scan() {
			// EOF terminates as `exit 0`.
			return scanner.Err()
		}
		if err := r.dispatch(scanner.Text()); err != nil {
			return err
		}
	}
}

// runTerminal reads with raw-mode line editing and tab completion. Raw
// mode is dropped around command execution so child processes see a
// normal terminal.
func (r *REPL) runTerminal() error {
	fd := int(r.stdin.Fd())
	t := term.NewTerminal(terminalRW{r.stdin, r.stdout}, r.prompt())
	t.AutoCompleteCallback = r.completeKey

	for {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return r.runPlain()
		}
		line, err := t.ReadLine()
		term.Restore(fd, oldState) //nolint:errcheck // terminal teardown

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := r.dispatch(line); err != nil {
			return err
		}
	}
}

// dispatch records and executes one accepted line. Only an ExitError
// escapes; every other failure has already been printed as a diagnostic
// and control returns to the prompt.
func (r *REPL) dispatch(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	r.hist.Append(line)
	return r.shell.Line(line)
}

// completeKey adapts the completion engine to the terminal callback.
// Completion applies to the command word: cursor at end of line, no
// space typed yet.
func (r *REPL) completeKey(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' {
		return "", 0, false
	}
	if pos != len(line) || line == "" || strings.Contains(line, " ") {
		return "", 0, false
	}

	res := r.engine.Complete(line, 0)
	if res.Bell {
		r.stdout.Write([]byte{'\a'}) //nolint:errcheck // terminal write
	}
	if res.OK {
		return res.Text, len(res.Text), true
	}
	if res.List != nil {
		// The terminal still believes it is on the input row, so print
		// the candidates and redraw the prompt and prefix by hand. The
		// cursor ends where the terminal expects it: end of line.
		var b strings.Builder
		b.WriteString("\r\n")
		b.WriteString(strings.Join(res.List, "  "))
		b.WriteString("\r\n")
		b.WriteString(r.prompt())
		b.WriteString(line)
		io.WriteString(r.stdout, b.String()) //nolint:errcheck // terminal write
	}
	return "", 0, false
}

// prompt returns the prompt text, styled only when configured and
// writing to a terminal.
func (r *REPL) prompt() string {
	if r.cfg.Color && term.IsTerminal(int(r.stdout.Fd())) {
		return promptStyle.Render(r.cfg.Prompt)
	}
	return r.cfg.Prompt
}

// terminalRW joins stdin and stdout into the io.ReadWriter the terminal
// wants.
type terminalRW struct {
	io.Reader
	io.Writer
}
