package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgrep-dev/cgrep/internal/lexer"
	"github.com/cgrep-dev/cgrep/internal/pattern"
)

func word(text string, line int) lexer.Event {
	return lexer.Event{Kind: lexer.KindWord, Text: text, Line: line}
}

func sep(text string, line int) lexer.Event {
	return lexer.Event{Kind: lexer.KindSep, Text: text, Line: line}
}

func other(line int) lexer.Event {
	return lexer.Event{Kind: lexer.KindOther, Line: line}
}

func TestAccumulatorBuildsChains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		events       []lexer.Event
		wantText     string
		wantSuffixes []Suffix
	}{
		{
			name:         "single word",
			events:       []lexer.Event{word("tmp", 1)},
			wantText:     "tmp",
			wantSuffixes: []Suffix{{Start: 0, Line: 1}},
		},
		{
			name:         "arrow and dot chain",
			events:       []lexer.Event{word("ptr", 1), sep("->", 1), word("memb", 1), sep(".", 1), word("x", 1)},
			wantText:     "ptr->memb.x",
			wantSuffixes: []Suffix{{Start: 0, Line: 1}, {Start: 5, Line: 1}, {Start: 10, Line: 1}},
		},
		{
			name:         "word after word starts over",
			events:       []lexer.Event{word("a", 1), word("b", 1)},
			wantText:     "b",
			wantSuffixes: []Suffix{{Start: 0, Line: 1}},
		},
		{
			name:         "other breaks the chain",
			events:       []lexer.Event{word("a", 1), sep(".", 1), word("b", 1), other(1), word("c", 1)},
			wantText:     "c",
			wantSuffixes: []Suffix{{Start: 0, Line: 1}},
		},
		{
			name:         "separator without a word acts as other",
			events:       []lexer.Event{sep(".", 1), word("x", 1)},
			wantText:     "x",
			wantSuffixes: []Suffix{{Start: 0, Line: 1}},
		},
		{
			name:         "components keep their own lines",
			events:       []lexer.Event{word("ptr", 1), sep("->", 2), word("val", 2)},
			wantText:     "ptr->val",
			wantSuffixes: []Suffix{{Start: 0, Line: 1}, {Start: 5, Line: 2}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var acc Accumulator
			for _, ev := range tt.events {
				acc.Advance(ev)
			}
			assert.Equal(t, tt.wantText, acc.Text())
			assert.Equal(t, tt.wantSuffixes, acc.Suffixes())
		})
	}
}

func TestAccumulatorAdvanceReportsGrowth(t *testing.T) {
	t.Parallel()

	var acc Accumulator
	assert.True(t, acc.Advance(word("a", 1)))
	assert.False(t, acc.Advance(sep(".", 1)))
	assert.True(t, acc.Advance(word("b", 1)))
	assert.False(t, acc.Advance(other(1)))
}

func TestAccumulatorBare(t *testing.T) {
	t.Parallel()

	var acc Accumulator
	assert.False(t, acc.Bare())

	acc.Advance(word("foo", 1))
	assert.True(t, acc.Bare())

	acc.Advance(sep(".", 1))
	assert.False(t, acc.Bare())

	acc.Advance(word("bar", 1))
	assert.False(t, acc.Bare(), "chain component is not a bare identifier")

	acc.Advance(word("baz", 1))
	assert.True(t, acc.Bare(), "fresh word after a chain is bare again")
}

func TestAccumulatorIgnoresCapturedBodies(t *testing.T) {
	t.Parallel()

	var acc Accumulator
	acc.Advance(word("ptr", 1))
	acc.Advance(lexer.Event{Kind: lexer.KindComment, Text: " note ", Line: 1})
	acc.Advance(sep("->", 2))
	acc.Advance(word("val", 2))

	assert.Equal(t, "ptr->val", acc.Text())
}

func mustPattern(t *testing.T, expr string) *pattern.Pattern {
	t.Helper()
	p, err := pattern.Compile(expr)
	require.NoError(t, err)
	return p
}

func TestCheckMatchesWholeSuffixesOnly(t *testing.T) {
	t.Parallel()

	var acc Accumulator
	for _, ev := range []lexer.Event{word("ptr", 1), sep("->", 1), word("val", 1)} {
		acc.Advance(ev)
	}

	tests := []struct {
		expr    string
		matched bool
	}{
		{expr: "val", matched: true},
		{expr: `ptr->val`, matched: true},
		{expr: "ptr", matched: false},
		{expr: "memb", matched: false},
		{expr: "va", matched: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			matched, _ := Check(acc.Text(), acc.Suffixes(), mustPattern(t, tt.expr), false)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestCheckCollectsEveryMatchingSuffix(t *testing.T) {
	t.Parallel()

	var acc Accumulator
	for _, ev := range []lexer.Event{word("x", 1), sep(".", 2), word("x", 2)} {
		acc.Advance(ev)
	}

	matched, hits := Check(acc.Text(), acc.Suffixes(), mustPattern(t, `x|x\.x`), true)
	assert.True(t, matched)
	assert.Equal(t, []Hit{
		{Text: "x.x", StartLine: 1},
		{Text: "x", StartLine: 2},
	}, hits)
}

func TestCheckShortCircuitsWithoutCollect(t *testing.T) {
	t.Parallel()

	calls := 0
	m := matcherFunc(func(s string) bool {
		calls++
		return true
	})

	matched, hits := Check("a.b.c", []Suffix{{0, 1}, {2, 1}, {4, 1}}, m, false)
	assert.True(t, matched)
	assert.Nil(t, hits)
	assert.Equal(t, 1, calls)
}

type matcherFunc func(string) bool

func (f matcherFunc) Match(s string) bool { return f(s) }
