package formatter

import (
	"fmt"
	"io"

	"github.com/cgrep-dev/cgrep/internal/types"
)

// WriteFindings renders the findings collected from one source as the error
// list an editor session consumes, one finding per line in hit order:
//
//	42: main.c: found 'ptr->val'
//
// The output is plain text on purpose; it is parsed by editor scripts, not
// read by people.
func WriteFindings(w io.Writer, findings []types.Finding) error {
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "%d: %s: found '%s'\n", f.Line, f.Source, f.Text); err != nil {
			return err
		}
	}
	return nil
}
