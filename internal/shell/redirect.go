package shell

import "strings"

// Redirections describes how a command's stdout and stderr are diverted
// to files. An empty path means the stream is not redirected. The append
// flags are independent per stream, so `> a 2>> b` truncates a while
// appending to b.
type Redirections struct {
	Stdout       string
	Stderr       string
	AppendStdout bool
	AppendStderr bool
}

// HasAny reports whether at least one stream is redirected.
func (r Redirections) HasAny() bool {
	return r.Stdout != "" || r.Stderr != ""
}

// ExtractRedirections walks a token list, removing redirection operators
// and their targets, and returns the cleaned tokens plus the plan.
// Recognized: > >> 1> 1>> 2> 2>> with the target as the next token, and
// the fused forms >file, 1>file, 2>file. A dangling operator with no
// following token is silently dropped. The last redirection per stream
// wins.
func ExtractRedirections(args []string) ([]string, Redirections) {
	var cleaned []string
	var redir Redirections

	i := 0
	for i < len(args) {
		tok := args[i]

		switch tok {
		case ">", "1>", ">>", "1>>":
			if i+1 < len(args) {
				redir.Stdout = args[i+1]
				redir.AppendStdout = tok == ">>" || tok == "1>>"
				i += 2
			} else {
				i++
			}
			continue
		case "2>", "2>>":
			if i+1 < len(args) {
				redir.Stderr = args[i+1]
				redir.AppendStderr = tok == "2>>"
				i += 2
			} else {
				i++
			}
			continue
		}

		// Fused forms carry the target in the same token.
		switch {
		case strings.HasPrefix(tok, ">") && len(tok) > 1:
			redir.Stdout = tok[1:]
			redir.AppendStdout = false
			i++
			continue
		case strings.HasPrefix(tok, "1>") && len(tok) > 2:
			redir.Stdout = tok[2:]
			redir.AppendStdout = false
			i++
			continue
		case strings.HasPrefix(tok, "2>") && len(tok) > 2:
			redir.Stderr = tok[2:]
			redir.AppendStderr = false
			i++
			continue
		}

		cleaned = append(cleaned, tok)
		i++
	}

	return cleaned, redir
}
