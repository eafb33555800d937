package formatter

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/cgrep-dev/cgrep/internal/types"
)

func init() {
	// keep prefix assertions byte-exact
	color.NoColor = true
}

func TestReportLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		lineNumbers bool
		want        string
	}{
		{
			name:   "bare line for standard input",
			source: "",
			want:   "x = tmp;\n",
		},
		{
			name:   "source prefix",
			source: "main.c",
			want:   "main.c: x = tmp;\n",
		},
		{
			name:        "line number prefix is right aligned",
			source:      "",
			lineNumbers: true,
			want:        "   7: x = tmp;\n",
		},
		{
			name:        "source and line number",
			source:      "main.c",
			lineNumbers: true,
			want:        "main.c:    7: x = tmp;\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var sb strings.Builder
			r := NewReport(&sb, tt.source, tt.lineNumbers)
			assert.NoError(t, r.Line(7, "x = tmp;"))
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

func TestReportSourceName(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	r := NewReport(&sb, "main.c", false)
	assert.NoError(t, r.SourceName())
	assert.Equal(t, "main.c\n", sb.String())
}

func TestWriteFindings(t *testing.T) {
	t.Parallel()

	findings := []types.Finding{
		{Source: "main.c", Line: 3, Text: "ptr->val"},
		{Source: "main.c", Line: 3, Text: "val"},
		{Source: "main.c", Line: 9, Text: "tmp"},
	}

	var sb strings.Builder
	assert.NoError(t, WriteFindings(&sb, findings))
	assert.Equal(t,
		"3: main.c: found 'ptr->val'\n"+
			"3: main.c: found 'val'\n"+
			"9: main.c: found 'tmp'\n",
		sb.String())
}
