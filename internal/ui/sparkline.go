package ui

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders per-second counts as block characters, exactly width
// runes wide. The newest samples are kept; missing ones are drawn as zero
// on the left. Heights are relative to the largest sample shown.
func Sparkline(data []int64, width int) string {
	if width <= 0 {
		return ""
	}

	samples := make([]int64, width)
	if len(data) >= width {
		copy(samples, data[len(data)-width:])
	} else {
		copy(samples[width-len(data):], data)
	}

	var peak int64
	for _, v := range samples {
		peak = max(peak, v)
	}

	out := make([]rune, width)
	top := int64(len(sparkBlocks) - 1)
	for i, v := range samples {
		if peak <= 0 || v <= 0 {
			out[i] = sparkBlocks[0]
			continue
		}
		out[i] = sparkBlocks[min(v*top/peak, top)]
	}
	return string(out)
}
