package output

import (
	"io"

	"github.com/dshills/quill/internal/state"
)

// JSONWriter outputs the full pipeline state as indented JSON, the format
// other tools consume.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, st *state.State) error {
	data, err := st.ToJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
