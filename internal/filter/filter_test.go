package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainOf(t *testing.T, rules ...string) *Chain {
	t.Helper()
	c := NewChain()
	for _, r := range rules {
		require.NoError(t, c.Add(r[2:], r[0] == '+'), r)
	}
	return c
}

func TestNilAndEmptyChainKeepEverything(t *testing.T) {
	var nilChain *Chain
	for _, c := range []*Chain{nilChain, NewChain()} {
		assert.True(t, c.Empty())
		assert.Zero(t, c.Len())
		assert.True(t, c.Keep("src/main.go", false))
		assert.True(t, c.Keep("src", true))
		assert.Empty(t, c.String())
	}
}

func TestChainKeep(t *testing.T) {
	type entry struct {
		rel   string
		isDir bool
		keep  bool
	}
	tests := []struct {
		name    string
		rules   []string
		entries []entry
	}{
		{
			name:  "basename glob at any depth",
			rules: []string{"- *.log"},
			entries: []entry{
				{"app.log", false, false},
				{"var/run/daemon.log", false, false},
				{"app.txt", false, true},
			},
		},
		{
			name:  "earlier include wins",
			rules: []string{"+ keep.log", "- *.log"},
			entries: []entry{
				{"keep.log", false, true},
				{"sub/keep.log", false, true},
				{"drop.log", false, false},
			},
		},
		{
			name:  "later include is shadowed",
			rules: []string{"- *.log", "+ keep.log"},
			entries: []entry{
				{"keep.log", false, false},
			},
		},
		{
			name:  "directory-only rule spares files",
			rules: []string{"- target/"},
			entries: []entry{
				{"target", true, false},
				{"crates/x/target", true, false},
				{"target", false, true},
			},
		},
		{
			name:  "leading slash anchors at the root",
			rules: []string{"- /TODO"},
			entries: []entry{
				{"TODO", false, false},
				{"docs/TODO", false, true},
			},
		},
		{
			name:  "whitelist by extension",
			rules: []string{"+ */", "+ **/*.go", "- *"},
			entries: []entry{
				{"cmd", true, true},
				{"internal/index/store.go", false, true},
				{"go.sum", false, false},
			},
		},
		{
			name:  "version control and dependency trees",
			rules: []string{"- .git/", "- node_modules/"},
			entries: []entry{
				{".git", true, false},
				{"third_party/lib/.git", true, false},
				{"web/node_modules", true, false},
				{".gitignore", false, true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := chainOf(t, tt.rules...)
			for _, e := range tt.entries {
				assert.Equal(t, e.keep, c.Keep(e.rel, e.isDir), "%s (dir=%v)", e.rel, e.isDir)
			}
		})
	}
}

func TestChainString(t *testing.T) {
	c := chainOf(t, "+ *.go", "- vendor/")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "+ *.go\n- vendor/", c.String())
}

func TestChainAddBadPattern(t *testing.T) {
	c := NewChain()
	err := c.AddExclude("[z-a]")
	require.ErrorContains(t, err, `pattern "[z-a]"`)
	assert.True(t, c.Empty(), "a rejected rule is not appended")
}
