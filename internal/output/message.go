package output

import (
	"fmt"
	"io"

	"github.com/dshills/quill/internal/state"
)

// MessageWriter outputs only the commit message, for piping into
// git commit -F or a prepare-commit-msg hook file.
type MessageWriter struct{}

func (m *MessageWriter) Write(w io.Writer, st *state.State) error {
	if st.CommitMessage == nil {
		return fmt.Errorf("no commit message in pipeline state")
	}
	_, err := io.WriteString(w, *st.CommitMessage+"\n")
	return err
}
