package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/quill/internal/state"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	messageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	dimStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// TextWriter outputs a human-readable result for interactive use.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, st *state.State) error {
	ew := &errWriter{w: w}

	if st.CommitMessage != nil {
		ew.println(headerStyle.Render("Commit message"))
		ew.println(messageStyle.Render(*st.CommitMessage))
	} else {
		ew.println(warnStyle.Render("No commit message was produced."))
	}

	if st.BulletPoints != nil {
		ew.println(dimStyle.Render(fmt.Sprintf("%d change(s) parsed", len(st.BulletPoints))))
	}

	if st.HasErrors() {
		ew.println("")
		ew.println(warnStyle.Render("Warnings:"))
		for _, e := range st.Errors {
			ew.printf("  [%s] %s\n", e.Stage, e.Message)
		}
	}

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
