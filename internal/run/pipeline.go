package run

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/toba/gosh/internal/builtin"
	"github.com/toba/gosh/internal/lookup"
	"github.com/toba/gosh/internal/shell"
	"golang.org/x/sync/errgroup"
)

// stage is one launched external pipeline command.
type stage struct {
	name   string
	cmd    *exec.Cmd
	stderr bytes.Buffer
}

// pipeline runs two or more segments chained stdout-to-stdin. External
// stages run concurrently in their own processes; a built-in may only
// appear as the final stage. Each segment is parsed as its stage is
// about to be launched, left to right.
func (sh *Shell) pipeline(segments []string) error {
	last := len(segments) - 1

	// A built-in tail runs in-process after the external stages drain;
	// its piped input is read and discarded.
	tailArgs := shell.Tokenize(segments[last])
	if len(tailArgs) == 0 {
		return nil
	}
	builtinTail := builtin.Is(tailArgs[0])

	external := segments
	if builtinTail {
		external = segments[:last]
		if len(external) == 0 {
			return sh.command(segments[last])
		}
	}

	var stages []*stage
	var prevRead *os.File // read end feeding the next stage
	var tailCapture bytes.Buffer

	// abort releases the parent's remaining pipe end so running stages
	// observe EOF, then reaps them off the prompt path.
	abort := func() {
		if prevRead != nil {
			prevRead.Close()
		}
		for _, st := range stages {
			go st.cmd.Wait() //nolint:errcheck // reap abandoned stage
		}
	}

	for i, segment := range external {
		args := shell.Tokenize(segment)
		if len(args) == 0 {
			abort()
			return nil
		}
		name := args[0]

		if builtin.Is(name) {
			// Only the final pipeline position may hold a built-in.
			fmt.Fprintf(sh.Out, "%s: builtin commands cannot be used in the middle of a pipeline\n", name)
			abort()
			return nil
		}

		path, ok := lookup.Resolve(name)
		if !ok {
			fmt.Fprintf(sh.Out, "%s: command not found\n", name)
			abort()
			return nil
		}

		st := &stage{name: name}
		st.cmd = exec.Command(path, args[1:]...)
		st.cmd.Args[0] = name
		st.cmd.Stderr = &st.stderr

		if i == 0 {
			st.cmd.Stdin = sh.Stdin
		} else {
			st.cmd.Stdin = prevRead
		}

		var nextRead, writeEnd *os.File
		switch {
		case i < len(external)-1:
			r, w, err := os.Pipe()
			if err != nil {
				fmt.Fprintf(sh.Out, "%s: execution failed: %v\n", name, err)
				abort()
				return nil
			}
			nextRead, writeEnd = r, w
			st.cmd.Stdout = writeEnd
		case builtinTail:
			st.cmd.Stdout = &tailCapture
		default:
			st.cmd.Stdout = sh.Out
		}

		err := st.cmd.Start()

		// Close the parent's copies of the ends handed to this stage;
		// without this downstream stages never see EOF.
		if prevRead != nil {
			prevRead.Close()
			prevRead = nil
		}
		if writeEnd != nil {
			writeEnd.Close()
		}

		if err != nil {
			fmt.Fprintf(sh.Out, "%s: execution failed: %v\n", name, err)
			if nextRead != nil {
				nextRead.Close()
			}
			abort()
			return nil
		}

		prevRead = nextRead
		stages = append(stages, st)
	}

	// Await every stage; one failing stage never blocks the others.
	g := new(errgroup.Group)
	for _, st := range stages {
		g.Go(func() error {
			return st.cmd.Wait()
		})
	}
	g.Wait() //nolint:errcheck // stage exit statuses are not propagated

	// Forward captured stderr in stage order.
	for _, st := range stages {
		if st.stderr.Len() > 0 {
			io.WriteString(sh.Out, st.stderr.String()) //nolint:errcheck // terminal write
		}
	}

	if builtinTail {
		return sh.command(segments[last])
	}
	return nil
}
