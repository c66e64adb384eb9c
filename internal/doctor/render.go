package doctor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // green
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true) // red
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))            // gray
	headStyle = lipgloss.NewStyle().Bold(true)
)

// RenderText writes the styled report.
func RenderText(w io.Writer, r Report) {
	fmt.Fprintln(w, headStyle.Render("gosh environment"))

	if r.HomeSet {
		fmt.Fprintf(w, "%s home directory: %s\n", okStyle.Render("OK:  "), r.Home)
	} else {
		fmt.Fprintf(w, "%s HOME is not set; cd with no argument changes to /\n", failStyle.Render("FAIL:"))
	}

	if r.Terminal {
		fmt.Fprintf(w, "%s terminal: %dx%d\n", okStyle.Render("OK:  "), r.Width, r.Height)
	} else {
		fmt.Fprintf(w, "%s stdout is not a terminal; completion disabled\n", dimStyle.Render("--:  "))
	}

	usable := 0
	for _, d := range r.PathDirs {
		switch {
		case !d.Exists:
			fmt.Fprintf(w, "%s %s %s\n", dimStyle.Render("--:  "), d.Dir, dimStyle.Render("(missing)"))
		case !d.Readable:
			fmt.Fprintf(w, "%s %s %s\n", failStyle.Render("FAIL:"), d.Dir, dimStyle.Render("(unreadable)"))
		default:
			usable++
			fmt.Fprintf(w, "%s %s %s\n", okStyle.Render("OK:  "), d.Dir,
				dimStyle.Render(fmt.Sprintf("(%d executables)", d.Executables)))
		}
	}
	if usable == 0 {
		fmt.Fprintf(w, "%s no usable PATH directories; only builtins will run\n", failStyle.Render("FAIL:"))
	}

	fmt.Fprintf(w, "%s builtins: %v\n", okStyle.Render("OK:  "), r.Builtins)
}

// RenderJSON writes the report as formatted JSON.
func RenderJSON(w io.Writer, r Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}
