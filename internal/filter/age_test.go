package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgeExpr(t *testing.T) {
	tests := []struct {
		input string
		want  AgeExpr
	}{
		{"7", AgeExpr{CmpEqual, 7}},
		{"-7", AgeExpr{CmpLess, 7}},
		{"+30", AgeExpr{CmpGreater, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAgeExpr(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}

	for _, bad := range []string{"", "x", "+-1", "1d"} {
		_, err := ParseAgeExpr(bad)
		assert.Error(t, err, bad)
	}
}

func TestAgeExprMatch(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	threeDays := now.Add(-3*day - time.Hour)

	assert.True(t, AgeExpr{CmpLess, 7}.Match(threeDays, now))
	assert.False(t, AgeExpr{CmpGreater, 7}.Match(threeDays, now))
	assert.True(t, AgeExpr{CmpEqual, 3}.Match(threeDays, now), "partial days truncate")
	assert.True(t, AgeExpr{}.Match(threeDays, now))
	assert.True(t, AgeExpr{CmpLess, 1}.Match(now.Add(-time.Minute), now))
}
