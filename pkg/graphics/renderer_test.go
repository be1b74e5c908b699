package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novvoo/go-pathkit/pkg/pdf"
	"github.com/novvoo/go-pathkit/pkg/shared"
)

func renderContent(t *testing.T, content string) ([]PathDrawing, []pdf.Text) {
	t.Helper()
	ops, err := pdf.ParseContent([]byte(content))
	require.NoError(t, err)
	drawings, texts, err := NewRenderer(800, 800).RenderAll(ops)
	require.NoError(t, err)
	return drawings, texts
}

func TestRendererMixedPage(t *testing.T) {
	drawings, texts := renderContent(t,
		"2 J\nBT\n0 0 0 rg\n/F1 27 Tf\n57.375 722.28 Td\n( hi ) Tj\nET\n500 500 m\n600 600 l\nf")

	require.Len(t, texts, 1)
	assert.Equal(t, pdf.Name("F1"), texts[0].FontFamily)
	assert.Equal(t, []byte(" hi "), texts[0].Contents)

	require.Len(t, drawings, 1)
	drawing := drawings[0]
	assert.Equal(t, DrawFill, drawing.Kind)
	// The cap style set by 2 J rode along on the emitted properties.
	assert.Equal(t, shared.CapSquare, drawing.Properties.LineCap)
	// A filled bare line was rewritten into a thin rectangle.
	require.Len(t, drawing.Events, 5)
	assertWellFormed(t, drawing.Events)
}

func TestRendererStrokeKinds(t *testing.T) {
	drawings, _ := renderContent(t, "0 0 m 10 10 l S 20 20 m 30 30 l s")
	require.Len(t, drawings, 2)

	assert.Equal(t, DrawStroke, drawings[0].Kind)
	end := drawings[0].Events[len(drawings[0].Events)-1].(End)
	assert.False(t, end.Close)

	end = drawings[1].Events[len(drawings[1].Events)-1].(End)
	assert.True(t, end.Close)
}

func TestRendererPropertiesSnapshot(t *testing.T) {
	drawings, _ := renderContent(t,
		"4 w 1 J [2 2] 0 d 0 0 m 10 10 l S 9 w 20 20 m 30 30 l S")
	require.Len(t, drawings, 2)

	assert.Equal(t, shared.LineWidth(4), drawings[0].Properties.LineWidth)
	assert.Equal(t, shared.CapRound, drawings[0].Properties.LineCap)
	assert.Equal(t, []float32{2, 2}, drawings[0].Properties.DashPattern.Array)
	// The second drawing sees the new width, the first keeps its snapshot.
	assert.Equal(t, shared.LineWidth(9), drawings[1].Properties.LineWidth)
}

func TestRendererColorOperators(t *testing.T) {
	drawings, _ := renderContent(t,
		"0.9 0.5 0.1 RG /DeviceCMYK cs 0.1 0.2 0.3 0.4 sc 0 0 m 10 10 l S")
	require.Len(t, drawings, 1)

	props := drawings[0].Properties
	// RG implies the stroking space switched to DeviceRGB.
	assert.Equal(t, shared.DeviceRGB, props.StrokeColor.Space)
	assert.Equal(t, shared.NewRGB(0.9, 0.5, 0.1), props.StrokeColor.Current().RGB)

	assert.Equal(t, shared.DeviceCMYK, props.NonStrokeColor.Space)
	assert.Equal(t, shared.NewCMYK(0.1, 0.2, 0.3, 0.4), props.NonStrokeColor.Current().CMYK)
}

func TestRendererRectOperator(t *testing.T) {
	drawings, _ := renderContent(t, "10 10 100 50 re f")
	require.Len(t, drawings, 1)
	require.Len(t, drawings[0].Events, 5)
	assertWellFormed(t, drawings[0].Events)
}

func TestRendererDegenerateRectMatchesUnitRect(t *testing.T) {
	degenerate, _ := renderContent(t, "0 0 0 0 re f")
	unit, _ := renderContent(t, "0 0 1 1 re f")
	require.Len(t, degenerate, 1)
	require.Len(t, unit, 1)
	assert.Equal(t, unit[0].Events, degenerate[0].Events)
}

func TestRendererCurveOperators(t *testing.T) {
	drawings, _ := renderContent(t, "0 0 m 10 0 20 10 30 10 c 40 10 50 0 v h S")
	require.Len(t, drawings, 1)
	assertWellFormed(t, drawings[0].Events)

	var cubics int
	for _, event := range drawings[0].Events {
		if _, ok := event.(Cubic); ok {
			cubics++
		}
	}
	assert.Equal(t, 2, cubics)
}

func TestRendererOperatorOrderPreserved(t *testing.T) {
	drawings, texts := renderContent(t,
		"0 0 m 10 10 l S BT /F1 10 Tf 0 0 Td (a) Tj ET 20 20 m 30 30 l f")
	assert.Len(t, drawings, 2)
	assert.Len(t, texts, 1)
	assert.Equal(t, DrawStroke, drawings[0].Kind)
	assert.Equal(t, DrawFill, drawings[1].Kind)
}

func TestRendererPageStateViolation(t *testing.T) {
	// A fill with no path at all is a state error, fatal for the page.
	ops, err := pdf.ParseContent([]byte("f"))
	require.NoError(t, err)
	_, _, err = NewRenderer(800, 800).RenderAll(ops)
	require.Error(t, err)
}
