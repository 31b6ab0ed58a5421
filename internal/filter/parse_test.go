package filter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	rules := `# index sources, skip build output
+ *.go
- *.log

exclude build/
include build/keep.txt
vendor
`
	c := NewChain()
	require.NoError(t, c.Parse(strings.NewReader(rules), "rules"))

	require.Len(t, c.rules, 5)
	want := []bool{true, false, false, true, false}
	for i, inc := range want {
		assert.Equal(t, inc, c.rules[i].Include, "rule %d", i)
	}

	assert.True(t, c.Keep("main.go", false))
	assert.False(t, c.Keep("app.log", false))
	assert.False(t, c.Keep("build", true))
	assert.False(t, c.Keep("vendor", true))
	assert.True(t, c.Keep("README.md", false))
}

func TestParseCommentsAndBlanksOnly(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.Parse(strings.NewReader("# nothing\n\n   \n"), "rules"))
	assert.True(t, c.Empty())
}

func TestParseErrorsCarryLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"bare plus", "- *.tmp\n+\n", 2},
		{"bad class", "# c\n\n- [z-a]\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewChain().Parse(strings.NewReader(tt.input), "ffind.rules")
			var re *RuleError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.line, re.Line)
			assert.Contains(t, err.Error(), "ffind.rules:")
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.rules")
	require.NoError(t, os.WriteFile(path, []byte("- node_modules/\n+ *.md\n"), 0o644))

	c := NewChain()
	require.NoError(t, c.LoadFile(path))
	assert.False(t, c.Keep("web/node_modules", true))
	assert.True(t, c.Keep("docs/intro.md", false))
}

func TestLoadFileMissing(t *testing.T) {
	err := NewChain().LoadFile("/nonexistent/ffind.rules")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
