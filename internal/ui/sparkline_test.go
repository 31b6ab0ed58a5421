package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparklineAllZeros(t *testing.T) {
	assert.Equal(t, "▁▁▁▁▁", Sparkline([]int64{0, 0, 0, 0, 0}, 5))
}

func TestSparklinePadsOlderSide(t *testing.T) {
	runes := []rune(Sparkline([]int64{100}, 5))
	assert.Len(t, runes, 5)
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[4])
}

func TestSparklineRamp(t *testing.T) {
	runes := []rune(Sparkline([]int64{1, 2, 3, 4, 5, 6, 7, 8}, 8))
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[7])
}

func TestSparklineFlat(t *testing.T) {
	assert.Equal(t, "████", Sparkline([]int64{5, 5, 5, 5}, 4))
}

func TestSparklineZeroWidth(t *testing.T) {
	assert.Empty(t, Sparkline([]int64{1, 2, 3}, 0))
}

func TestSparklineKeepsNewest(t *testing.T) {
	assert.Equal(t, "▁▁█", Sparkline([]int64{50, 50, 0, 0, 9}, 3))
}
