package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	out := RenderProgress(0.5, 10)
	assert.Contains(t, out, "50%")
	assert.Equal(t, 5, strings.Count(out, filledBlock))
	assert.Equal(t, 5, strings.Count(out, emptyBlock))
}

func TestRenderProgress_Clamps(t *testing.T) {
	assert.Contains(t, RenderProgress(-0.5, 10), "0%")
	assert.Contains(t, RenderProgress(1.5, 10), "100%")
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 50, 100}, StyleBlue)
	assert.Contains(t, out, "▁")
	assert.Contains(t, out, "█")
}

func TestSparkline_AllZeros(t *testing.T) {
	out := Sparkline([]float64{0, 0, 0}, StyleBlue)
	assert.Equal(t, 3, strings.Count(out, "▁"))
	assert.NotContains(t, out, "█")
}

func TestSparkline_Empty(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil, StyleBlue))
}
