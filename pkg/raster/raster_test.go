package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novvoo/go-pathkit/pkg/graphics"
	"github.com/novvoo/go-pathkit/pkg/pdf"
)

func render(t *testing.T, content string) *Canvas {
	t.Helper()
	ops, err := pdf.ParseContent([]byte(content))
	require.NoError(t, err)
	canvas := New(800, 800)
	require.NoError(t, graphics.NewRenderer(800, 800).Render(ops, canvas))
	return canvas
}

func coverage(c *Canvas) int {
	covered := 0
	for _, alpha := range c.Mask().Pix {
		if alpha != 0 {
			covered++
		}
	}
	return covered
}

func TestCanvasFillsThinLine(t *testing.T) {
	canvas := render(t, "100 100 m 300 300 l f")
	// The thin-rectangle rewrite gives the filled line actual coverage.
	assert.Greater(t, coverage(canvas), 100)
}

func TestCanvasFillsRect(t *testing.T) {
	canvas := render(t, "100 600 200 100 re f")
	covered := coverage(canvas)
	// A 200x100 rectangle covers about 20000 device pixels.
	assert.Greater(t, covered, 15000)
	assert.Less(t, covered, 25000)
}

func TestCanvasStrokeUsesLineWidth(t *testing.T) {
	thin := render(t, "1 w 100 100 m 300 100 l S")
	thick := render(t, "10 w 100 100 m 300 100 l S")
	assert.Greater(t, coverage(thick), coverage(thin)*3)
}

func TestCanvasRecordsTextPlacements(t *testing.T) {
	canvas := render(t, "BT /F1 12 Tf 100 100 Td (hello) Tj ET")
	require.Len(t, canvas.Texts(), 1)
	assert.Equal(t, []byte("hello"), canvas.Texts()[0].Contents)
	assert.Equal(t, 0, coverage(canvas), "text is passed through, not rasterized")
}

func TestCanvasEmptyDrawingIsIgnored(t *testing.T) {
	canvas := New(800, 800)
	canvas.Draw(graphics.PathDrawing{Kind: graphics.DrawFill})
	assert.Equal(t, 0, coverage(canvas))
}
