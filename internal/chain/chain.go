// Package chain accumulates dotted identifier chains like `ptr->memb.x` from
// lexer events and tests every recorded suffix of the growing chain against a
// full-match predicate. Matching `memb.x` therefore hits inside
// `ptr->memb.x`, while plain `memb` does not.
package chain

import "github.com/cgrep-dev/cgrep/internal/lexer"

// Suffix marks where one chain component begins.
type Suffix struct {
	Start int // byte offset of the component in the chain text
	Line  int // line the component completed on
}

// wordState mirrors the three-way classification the accumulator keys on:
// the previous significant event was a word, a separator, or anything else.
type wordState int

const (
	stateOther wordState = iota
	stateWord
	stateSep
)

// Accumulator builds the current chain. The zero value is ready to use; the
// chain resets whenever a non-chain token interrupts it.
type Accumulator struct {
	text     []byte
	suffixes []Suffix
	state    wordState
}

// Advance consumes one lexer event and reports whether it extended the chain,
// meaning the suffix list is worth re-checking. A word following a held
// separator is folded into the chain; a word following anything else starts a
// fresh chain. A separator without a preceding word, like any other token,
// breaks the chain. String and comment bodies are invisible here.
func (a *Accumulator) Advance(ev lexer.Event) bool {
	switch ev.Kind {
	case lexer.KindWord:
		if a.state == stateSep {
			a.suffixes = append(a.suffixes, Suffix{Start: len(a.text), Line: ev.Line})
			a.text = append(a.text, ev.Text...)
		} else {
			a.text = append(a.text[:0], ev.Text...)
			a.suffixes = append(a.suffixes[:0], Suffix{Start: 0, Line: ev.Line})
		}
		a.state = stateWord
		return true

	case lexer.KindSep:
		if a.state == stateWord {
			a.text = append(a.text, ev.Text...)
			a.state = stateSep
			return false
		}
		a.Reset()

	case lexer.KindOther:
		a.Reset()
	}
	return false
}

// Text returns the accumulated chain, including a trailing held separator.
func (a *Accumulator) Text() string {
	return string(a.text)
}

// Suffixes returns the recorded component boundaries, longest suffix first.
// The slice is owned by the accumulator and valid until the next Advance.
func (a *Accumulator) Suffixes() []Suffix {
	return a.suffixes
}

// Bare reports whether the chain is a single separator-free identifier.
// Only bare chains are eligible for rewriting.
func (a *Accumulator) Bare() bool {
	return a.state == stateWord && len(a.suffixes) == 1
}

// Reset discards the chain so the next word starts fresh.
func (a *Accumulator) Reset() {
	a.text = a.text[:0]
	a.suffixes = a.suffixes[:0]
	a.state = stateOther
}

// Matcher is the full-match predicate suffixes are tested against.
type Matcher interface {
	Match(s string) bool
}

// Hit is one matching suffix.
type Hit struct {
	Text      string
	StartLine int // line of the suffix's first component
}

// Check tests every recorded suffix of text against m, longest first. The
// whole list is re-evaluated on every call even though only the newest
// component is new; see the design notes for why the rescan is kept.
//
// With collect false the first hit short-circuits and no hits are returned.
// With collect true every matching suffix is an independent hit.
func Check(text string, suffixes []Suffix, m Matcher, collect bool) (bool, []Hit) {
	matched := false
	var hits []Hit
	for _, s := range suffixes {
		if !m.Match(text[s.Start:]) {
			continue
		}
		matched = true
		if !collect {
			return true, nil
		}
		hits = append(hits, Hit{Text: text[s.Start:], StartLine: s.Line})
	}
	return matched, hits
}
