package types

import "fmt"

// Mode selects what a scan pass reports or rewrites.
type Mode int

const (
	// ModeSearch reports every line containing a chain match.
	ModeSearch Mode = iota
	// ModeFilesOnly reports the source name on the first match and stops.
	ModeFilesOnly
	// ModeStrings reports double-quoted string literal bodies.
	ModeStrings
	// ModeComments reports comment bodies.
	ModeComments
	// ModeReview collects findings for an external editor session.
	ModeReview
	// ModeReplace rewrites matched bare identifiers in a copy of the source.
	ModeReplace
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeFilesOnly:
		return "files-only"
	case ModeStrings:
		return "strings"
	case ModeComments:
		return "comments"
	case ModeReview:
		return "review"
	case ModeReplace:
		return "replace"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Finding is a single hit collected during a scan pass: the matched chain
// suffix (or string/comment body) and where it was seen.
type Finding struct {
	Source string // source name; empty for standard input
	Line   int
	Text   string
}
