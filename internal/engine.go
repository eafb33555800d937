package internal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cgrep-dev/cgrep/formatter"
	"github.com/cgrep-dev/cgrep/internal/chain"
	"github.com/cgrep-dev/cgrep/internal/lexer"
	"github.com/cgrep-dev/cgrep/internal/pattern"
	"github.com/cgrep-dev/cgrep/internal/types"
)

// Engine drives one forward pass per source: bytes through the lexer, lexer
// events through the chain accumulator and suffix matcher, and line-level
// reporting or rewriting at each newline. The engine itself is immutable
// configuration; all mutable pass state lives in a per-source pass context,
// so sources share nothing.
type Engine struct {
	// Mode selects what the pass reports or rewrites.
	Mode types.Mode
	// Pattern is the compiled full-match predicate. In strings and comments
	// modes it may be nil, which reports every body.
	Pattern *pattern.Pattern
	// Replacement is the text substituted for matched bare identifiers in
	// replace mode.
	Replacement string
	// AtStart attributes a finding that spans lines to the line of its
	// first component instead of its last.
	AtStart bool
	// LineNumbers adds the line-number prefix to reported lines.
	LineNumbers bool
}

// NewEngine creates a scan engine for one mode. Pattern may be nil only for
// strings and comments modes.
func NewEngine(mode types.Mode, pat *pattern.Pattern) *Engine {
	return &Engine{Mode: mode, Pattern: pat}
}

// Result summarizes one pass over one source.
type Result struct {
	// Matched reports whether anything hit: a marked line, a reported
	// body, a finding, or a rewrite.
	Matched bool
	// Changed reports whether replace mode committed at least one rewrite.
	Changed bool
	// Findings holds the ordered hits collected in review mode.
	Findings []types.Finding
}

// Run performs one pass over r. source names the input for reports and
// findings; it is empty for standard input. In replace mode w receives the
// reconstructed source; in every other mode it receives the report.
func (e *Engine) Run(source string, r io.Reader, w io.Writer) (Result, error) {
	p := newPass(e, source, w)
	br := bufio.NewReader(r)

	for !p.stop {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("reading %s: %w", displayName(source), err)
		}
		if err := p.feed(c); err != nil {
			return Result{}, err
		}
	}

	if err := p.finish(); err != nil {
		return Result{}, err
	}
	return p.result, nil
}

func displayName(source string) string {
	if source == "" {
		return "standard input"
	}
	return source
}

// pass is the per-source context: lexical state, chain state, the line
// buffer, and the mode-specific bookkeeping. It is created fresh for every
// source and discarded afterwards.
type pass struct {
	e   *Engine
	rep *formatter.Report
	out *bufio.Writer // replace-mode output

	lex *lexer.Lexer
	acc chain.Accumulator

	source string
	line   []byte
	lineno int
	marked bool
	stop   bool

	// pending rewrite of a just-completed bare identifier; it commits when
	// the next event on the line confirms the identifier stayed bare, and
	// cancels when a separator turns it into a chain component.
	pending   bool
	pendStart int
	pendLen   int

	result Result
}

func newPass(e *Engine, source string, w io.Writer) *pass {
	opts := lexer.Options{
		CaptureStrings:  e.Mode == types.ModeStrings,
		CaptureComments: e.Mode == types.ModeComments,
	}
	p := &pass{
		e:      e,
		lex:    lexer.New(opts),
		source: source,
		lineno: 1,
	}
	if e.Mode == types.ModeReplace {
		p.out = bufio.NewWriter(w)
	} else {
		p.rep = formatter.NewReport(w, source, e.LineNumbers)
	}
	return p
}

// feed processes one input byte: lexer events first, then the byte joins the
// line buffer, except for the newline, which triggers line-end handling
// instead.
func (p *pass) feed(c byte) error {
	for _, ev := range p.lex.Feed(c) {
		if err := p.handle(ev); err != nil {
			return err
		}
	}
	if c == '\n' {
		return p.endLine(true)
	}
	p.line = append(p.line, c)
	return nil
}

// finish flushes the lexer at end of input and runs line-end handling for a
// final line that has no newline.
func (p *pass) finish() error {
	if p.stop {
		return nil
	}
	for _, ev := range p.lex.Finish() {
		if err := p.handle(ev); err != nil {
			return err
		}
	}
	if len(p.line) > 0 || p.marked || p.pending {
		if err := p.endLine(false); err != nil {
			return err
		}
	}
	if p.out != nil {
		if err := p.out.Flush(); err != nil {
			return fmt.Errorf("writing %s: %w", displayName(p.source), err)
		}
	}
	return nil
}

func (p *pass) handle(ev lexer.Event) error {
	switch p.e.Mode {
	case types.ModeStrings:
		if ev.Kind == lexer.KindString {
			return p.reportBody(ev)
		}
	case types.ModeComments:
		if ev.Kind == lexer.KindComment {
			return p.reportBody(ev)
		}
	case types.ModeReplace:
		p.handleReplace(ev)
	default:
		p.handleChain(ev)
	}
	return nil
}

// reportBody reports a string or comment body, filtered by the pattern when
// one was supplied. Bodies carry their opening line.
func (p *pass) reportBody(ev lexer.Event) error {
	if p.e.Pattern != nil && !p.e.Pattern.Match(ev.Text) {
		return nil
	}
	p.result.Matched = true
	return p.rep.Line(ev.Line, ev.Text)
}

// handleChain advances the accumulator and re-checks every suffix of the
// chain after each completed word.
func (p *pass) handleChain(ev lexer.Event) {
	if !p.acc.Advance(ev) {
		return
	}

	if p.e.Mode == types.ModeReview {
		_, hits := chain.Check(p.acc.Text(), p.acc.Suffixes(), p.e.Pattern, true)
		for _, h := range hits {
			line := ev.Line
			if p.e.AtStart {
				line = h.StartLine
			}
			p.result.Findings = append(p.result.Findings, types.Finding{
				Source: p.source,
				Line:   line,
				Text:   h.Text,
			})
		}
		p.result.Matched = p.result.Matched || len(hits) > 0
		return
	}

	if p.marked {
		return
	}
	matched, _ := chain.Check(p.acc.Text(), p.acc.Suffixes(), p.e.Pattern, false)
	p.marked = matched
}

// handleReplace tracks a completed bare identifier as a pending rewrite. The
// decision is deferred one event because `foo . bar` must not rewrite foo: a
// following separator cancels the pending rewrite, anything else commits it.
func (p *pass) handleReplace(ev lexer.Event) {
	switch ev.Kind {
	case lexer.KindWord:
		p.commit()
		p.acc.Advance(ev)
		if p.acc.Bare() && p.e.Pattern.Match(ev.Text) {
			p.pending = true
			p.pendStart = len(p.line) - len(ev.Text)
			p.pendLen = len(ev.Text)
		}
	case lexer.KindSep:
		p.pending = false
		p.acc.Advance(ev)
	default:
		p.commit()
		p.acc.Advance(ev)
	}
}

// commit rewrites the pending identifier in the line buffer. The buffer is
// reconstructed into a fresh slice rather than shifted in place, so a
// replacement of different length never corrupts the bytes after it.
func (p *pass) commit() {
	if !p.pending {
		return
	}
	p.pending = false
	tail := p.line[p.pendStart+p.pendLen:]
	buf := make([]byte, 0, p.pendStart+len(p.e.Replacement)+len(tail))
	buf = append(buf, p.line[:p.pendStart]...)
	buf = append(buf, p.e.Replacement...)
	buf = append(buf, tail...)
	p.line = buf
	p.result.Changed = true
	p.result.Matched = true
}

// endLine runs line-end handling: flush in replace mode, report in the
// line-oriented modes, then reset the per-line state.
func (p *pass) endLine(newline bool) error {
	switch p.e.Mode {
	case types.ModeReplace:
		p.commit()
		if _, err := p.out.Write(p.line); err != nil {
			return fmt.Errorf("writing %s: %w", displayName(p.source), err)
		}
		if newline {
			if err := p.out.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing %s: %w", displayName(p.source), err)
			}
		}

	case types.ModeSearch:
		if p.marked {
			p.result.Matched = true
			if err := p.rep.Line(p.lineno, string(p.line)); err != nil {
				return err
			}
		}

	case types.ModeFilesOnly:
		if p.marked {
			p.result.Matched = true
			p.stop = true
			return p.rep.SourceName()
		}
	}

	p.marked = false
	p.lineno++
	p.line = p.line[:0]
	return nil
}
