// Package lexer implements the character-level state machine that splits
// C-like source into the events the chain accumulator consumes: identifiers,
// the `.` and `->` separators, and everything else. Comment, string, and
// character-literal contexts are tracked so their contents never masquerade
// as identifiers; their bodies are captured only when a pass asks for them.
package lexer

// state is the lexical context governing the interpretation of the next
// character.
type state int

const (
	stateNormal      state = iota
	stateSlash             // '/' seen; a '*' opens a comment
	stateComment           // inside a /* */ comment
	stateCommentStar       // '*' inside a comment; a '/' closes it
	stateEscape            // backslash; consumes exactly one character
	stateString            // inside a double-quoted literal
	stateChar              // inside a single-quoted literal
	stateWord              // inside an identifier
	stateMinus             // '-' seen; a '>' forms the arrow separator
)

// Kind classifies the events emitted by the Lexer.
type Kind int

const (
	// KindWord is a completed identifier; Text holds it.
	KindWord Kind = iota
	// KindSep is a chain separator; Text is "." or "->".
	KindSep
	// KindOther is any other significant token character.
	KindOther
	// KindString is a completed double-quoted literal body, escapes kept
	// raw. Emitted only with Options.CaptureStrings.
	KindString
	// KindComment is a completed comment body, excluding the trailing */.
	// Emitted only with Options.CaptureComments.
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "Word"
	case KindSep:
		return "Sep"
	case KindOther:
		return "Other"
	case KindString:
		return "String"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Event is one lexical event. Line is the line the event completed on,
// except for KindComment and KindString, which carry the line their
// opening delimiter appeared on.
type Event struct {
	Kind Kind
	Text string
	Line int
}

// Options selects the side-channel captures a pass needs. Capturing is off
// by default so chain-oriented passes never buffer literal bodies.
type Options struct {
	CaptureStrings  bool
	CaptureComments bool
}

// Lexer consumes one byte at a time and emits events. It never fails:
// unterminated comments run to end of input and unterminated literals end
// at the line boundary.
type Lexer struct {
	opts Options

	state  state
	resume state // state to restore after an escape
	line   int

	word     []byte // identifier being accumulated
	body     []byte // comment or string body being accumulated
	bodyLine int    // line the body's opening delimiter appeared on

	events []Event // scratch; reused across Feed calls
}

// New returns a Lexer positioned at line 1 in the normal state.
func New(opts Options) *Lexer {
	return &Lexer{opts: opts, line: 1}
}

// Reset returns the lexer to its initial state for a new source.
func (l *Lexer) Reset() {
	l.state = stateNormal
	l.line = 1
	l.word = l.word[:0]
	l.body = l.body[:0]
	l.events = l.events[:0]
}

// Feed consumes one byte and returns the events it completed. The returned
// slice is reused by the next call to Feed or Finish; callers must not
// retain it.
func (l *Lexer) Feed(c byte) []Event {
	l.events = l.events[:0]
	l.step(c)
	if c == '\n' {
		l.line++
	}
	return l.events
}

// Finish ends the input, flushing a pending identifier, an unterminated
// comment body, or an open literal as a line boundary would. The lexer is
// left in the normal state.
func (l *Lexer) Finish() []Event {
	l.events = l.events[:0]
	switch l.state {
	case stateWord:
		l.emitWord()
	case stateComment, stateCommentStar:
		if l.opts.CaptureComments {
			l.emit(KindComment, string(l.body), l.bodyLine)
		}
	case stateString:
		if l.opts.CaptureStrings {
			l.emit(KindString, string(l.body), l.bodyLine)
		}
		l.emit(KindOther, "", l.line)
	case stateChar:
		l.emit(KindOther, "", l.line)
	}
	l.state = stateNormal
	l.word = l.word[:0]
	l.body = l.body[:0]
	return l.events
}

// step dispatches one character under the current state. Terminating
// characters are re-dispatched under the successor state rather than pushed
// back onto the input, so each byte is read exactly once.
func (l *Lexer) step(c byte) {
	switch l.state {
	case stateNormal:
		l.normal(c)

	case stateWord:
		if isWordChar(c) {
			l.word = append(l.word, c)
			return
		}
		l.emitWord()
		l.state = stateNormal
		l.normal(c)

	case stateMinus:
		l.state = stateNormal
		if c == '>' {
			l.emit(KindSep, "->", l.line)
			return
		}
		// The dangling '-' contributes no event of its own.
		l.normal(c)

	case stateSlash:
		if c == '*' {
			l.state = stateComment
			l.body = l.body[:0]
			l.bodyLine = l.line
			return
		}
		// The lone '/' contributes no event of its own.
		l.state = stateNormal
		l.normal(c)

	case stateComment:
		if c == '*' {
			l.state = stateCommentStar
		}
		if l.opts.CaptureComments {
			l.body = append(l.body, c)
		}

	case stateCommentStar:
		if c == '/' {
			l.state = stateNormal
			if l.opts.CaptureComments {
				// The '*' before this '/' is part of the
				// terminator, not the body.
				l.emit(KindComment, string(l.body[:len(l.body)-1]), l.bodyLine)
			}
			return
		}
		if c != '*' {
			l.state = stateComment
		}
		if l.opts.CaptureComments {
			l.body = append(l.body, c)
		}

	case stateString:
		switch c {
		case '"', '\n':
			l.state = stateNormal
			if l.opts.CaptureStrings {
				l.emit(KindString, string(l.body), l.bodyLine)
			}
			l.emit(KindOther, "", l.line)
		case '\\':
			l.resume = stateString
			l.state = stateEscape
			if l.opts.CaptureStrings {
				l.body = append(l.body, c)
			}
		default:
			if l.opts.CaptureStrings {
				l.body = append(l.body, c)
			}
		}

	case stateChar:
		switch c {
		case '\'', '\n':
			l.state = stateNormal
			l.emit(KindOther, "", l.line)
		case '\\':
			l.resume = stateChar
			l.state = stateEscape
		}

	case stateEscape:
		l.state = l.resume
		if l.resume == stateString && l.opts.CaptureStrings {
			l.body = append(l.body, c)
		}
	}
}

// normal handles a character in the normal state.
func (l *Lexer) normal(c byte) {
	switch {
	case c == '.':
		l.emit(KindSep, ".", l.line)
	case c == '-':
		l.state = stateMinus
	case c == '/':
		l.state = stateSlash
	case c == '\\':
		l.resume = stateNormal
		l.state = stateEscape
	case c == '"':
		l.state = stateString
		l.body = l.body[:0]
		l.bodyLine = l.line
	case c == '\'':
		l.state = stateChar
	case isLetter(c):
		l.state = stateWord
		l.word = append(l.word[:0], c)
	case isSpace(c):
		// Whitespace is silent.
	default:
		l.emit(KindOther, "", l.line)
	}
}

func (l *Lexer) emit(kind Kind, text string, line int) {
	l.events = append(l.events, Event{Kind: kind, Text: text, Line: line})
}

func (l *Lexer) emitWord() {
	l.emit(KindWord, string(l.word), l.line)
	l.word = l.word[:0]
}

// isLetter reports whether c starts an identifier. Digits and underscores
// may continue one but never start it.
func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWordChar(c byte) bool {
	return isLetter(c) || ('0' <= c && c <= '9') || c == '_'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
