// Package run executes parsed command lines: single stages with
// redirection and capture, and multi-stage pipelines chained over OS
// pipes.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/toba/gosh/internal/builtin"
	"github.com/toba/gosh/internal/lookup"
	"github.com/toba/gosh/internal/shell"
)

// DefaultTimeout is the ceiling for a single external command.
const DefaultTimeout = 20 * time.Second

// Shell executes command lines against process-wide state (cwd, PATH,
// history). Out receives command output and diagnostics; Stdin is
// inherited by external commands.
type Shell struct {
	State   *builtin.State
	Stdin   io.Reader
	Out     io.Writer
	Timeout time.Duration
}

// New returns a Shell wired to the given state and standard streams.
func New(state *builtin.State, stdin io.Reader, out io.Writer) *Shell {
	return &Shell{State: state, Stdin: stdin, Out: out, Timeout: DefaultTimeout}
}

// Line executes one input line: split into pipeline segments, then run
// as a single command or a pipeline. A returned error is always an
// ExitError requesting REPL termination.
func (sh *Shell) Line(line string) error {
	segments := shell.SplitPipeline(line)
	switch len(segments) {
	case 0:
		return nil
	case 1:
		return sh.command(segments[0])
	default:
		return sh.pipeline(segments)
	}
}

// command runs one pipeline-free segment.
func (sh *Shell) command(segment string) error {
	args := shell.Tokenize(segment)
	if len(args) == 0 {
		return nil
	}
	name := args[0]
	args, redir := shell.ExtractRedirections(args)

	// Create targets up front so they exist even if nothing is written.
	touchTarget(redir.Stdout, redir.AppendStdout)
	touchTarget(redir.Stderr, redir.AppendStderr)

	if h, ok := builtin.Lookup(name); ok {
		return h(sh.State, tail(args), redir)
	}

	path, ok := lookup.Resolve(name)
	if !ok {
		fmt.Fprintf(sh.Out, "%s: command not found\n", name)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sh.timeout())
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, tail(args)...)
	cmd.Args[0] = name
	cmd.Stdin = sh.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		fmt.Fprintf(sh.Out, "%s: command time out\n", name)
		return nil
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(sh.Out, "%s: execution failed: %v\n", name, err)
		return nil
	}

	// Exit status is not propagated; output is forwarded either way.
	if stdout.Len() > 0 {
		builtin.WriteResult(sh.Out, redir.Stdout, redir.AppendStdout, stdout.String())
	}
	if stderr.Len() > 0 {
		builtin.WriteResult(sh.Out, redir.Stderr, redir.AppendStderr, stderr.String())
	}
	return nil
}

// touchTarget creates or truncates a redirection target ahead of the
// command. Failures stay silent here; the write path reports them.
func touchTarget(path string, appendTo bool) {
	if path == "" {
		return
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendTo {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	if f, err := os.OpenFile(path, flags, 0o644); err == nil {
		f.Close()
	}
}

func tail(args []string) []string {
	if len(args) <= 1 {
		return nil
	}
	return args[1:]
}

func (sh *Shell) timeout() time.Duration {
	if sh.Timeout > 0 {
		return sh.Timeout
	}
	return DefaultTimeout
}
