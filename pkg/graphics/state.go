package graphics

import (
	"fmt"

	"github.com/novvoo/go-pathkit/pkg/shared"
)

// Properties is the mutable rendering state a drawing is emitted with.
type Properties struct {
	LineWidth      shared.LineWidth
	LineCap        shared.LineCap
	DashPattern    shared.DashPattern
	StrokeColor    shared.ColorValue
	NonStrokeColor shared.ColorValue
}

// DefaultProperties is the state of a freshly opened page.
func DefaultProperties() Properties {
	return Properties{
		LineWidth:      shared.DefaultLineWidth,
		LineCap:        shared.CapSquare,
		StrokeColor:    shared.NewStrokeColor(),
		NonStrokeColor: shared.NewNonStrokeColor(),
	}
}

// Clone copies the properties deeply enough to survive later mutation.
func (p Properties) Clone() Properties {
	out := p
	if p.DashPattern.Array != nil {
		out.DashPattern.Array = append([]float32(nil), p.DashPattern.Array...)
	}
	return out
}

type stateKind int

const (
	statePageDescription stateKind = iota
	stateText
	statePath
	stateClippingPath
)

func (k stateKind) String() string {
	switch k {
	case statePageDescription:
		return "PageDescription"
	case stateText:
		return "Text"
	case statePath:
		return "Path"
	case stateClippingPath:
		return "ClippingPath"
	}
	return "State(?)"
}

// GraphicsState enforces the PDF page-state discipline over
// {PageDescription, Text, Path, ClippingPath} and owns the rendering
// properties and the in-progress path builder. Illegal requests never
// mutate state.
type GraphicsState struct {
	properties Properties
	pageWidth  shared.PageWidth
	pageHeight shared.PageHeight
	kind       stateKind
	path       *Path
}

// NewGraphicsState builds a state machine for a page, starting in
// PageDescription.
func NewGraphicsState(width shared.PageWidth, height shared.PageHeight) *GraphicsState {
	return &GraphicsState{
		properties: DefaultProperties(),
		pageWidth:  width,
		pageHeight: height,
		kind:       statePageDescription,
	}
}

// Properties returns the current rendering properties.
func (g *GraphicsState) Properties() *Properties {
	return &g.properties
}

// MoveTo starts a new sub-path at a page coordinate.
func (g *GraphicsState) MoveTo(x, y float32) error {
	if err := g.enterPath(); err != nil {
		return err
	}
	return g.path.MoveTo(x, y)
}

// LineTo appends a straight segment.
func (g *GraphicsState) LineTo(x, y float32) error {
	if err := g.enterPath(); err != nil {
		return err
	}
	return g.path.LineTo(x, y)
}

// CubicBezierTo appends a cubic bezier segment.
func (g *GraphicsState) CubicBezierTo(ctrl1X, ctrl1Y, ctrl2X, ctrl2Y, x, y float32) error {
	if err := g.enterPath(); err != nil {
		return err
	}
	return g.path.CubicBezierTo(ctrl1X, ctrl1Y, ctrl2X, ctrl2Y, x, y)
}

// CubicBezierToV appends a cubic segment whose first control point is the
// current point.
func (g *GraphicsState) CubicBezierToV(ctrl2X, ctrl2Y, x, y float32) error {
	if err := g.enterPath(); err != nil {
		return err
	}
	return g.path.CubicBezierToV(ctrl2X, ctrl2Y, x, y)
}

// CubicBezierToY appends a cubic segment whose second control point
// coincides with the endpoint.
func (g *GraphicsState) CubicBezierToY(ctrl1X, ctrl1Y, x, y float32) error {
	if err := g.enterPath(); err != nil {
		return err
	}
	return g.path.CubicBezierToY(ctrl1X, ctrl1Y, x, y)
}

// Rect appends a rectangle sub-path.
func (g *GraphicsState) Rect(x, y float32, width shared.Width, height shared.Height) error {
	if err := g.enterPath(); err != nil {
		return err
	}
	return g.path.Rect(x, y, width, height)
}

// ClosePath closes the current sub-path.
func (g *GraphicsState) ClosePath() error {
	if err := g.enterPath(); err != nil {
		return err
	}
	return g.path.Close()
}

// Fill finishes the path for filling and returns its events. Sub-paths
// that are bare lines are rewritten into thin rectangles first. The state
// returns to PageDescription.
func (g *GraphicsState) Fill() ([]PathEvent, error) {
	if err := g.enterPath(); err != nil {
		return nil, err
	}
	path, err := g.takePath()
	if err != nil {
		return nil, err
	}
	if err := path.Close(); err != nil {
		return nil, err
	}
	path.MakeFillableIfNeeded()
	events, err := path.Build()
	if err != nil {
		return nil, err
	}
	return events, g.enterPageDescription()
}

// Stroke finishes the path for stroking and returns its events; close
// reports whether the final sub-path is closed first (operator s against
// S). The state returns to PageDescription.
func (g *GraphicsState) Stroke(close bool) ([]PathEvent, error) {
	if err := g.enterPath(); err != nil {
		return nil, err
	}
	path, err := g.takePath()
	if err != nil {
		return nil, err
	}
	// A sub-path already ended by a close (operator h) is kept as it is;
	// a path with no events at all still fails.
	if !path.drawState.IsInactive() || len(path.events) == 0 {
		if err := path.End(close); err != nil {
			return nil, err
		}
	}
	events, err := path.Build()
	if err != nil {
		return nil, err
	}
	return events, g.enterPageDescription()
}

// takePath removes the in-progress path, leaving a fresh builder behind.
func (g *GraphicsState) takePath() (*Path, error) {
	if g.kind != statePath || g.path == nil {
		return nil, &StateAccessError{State: "Path"}
	}
	path := g.path
	g.path = NewPath(g.pageWidth, g.pageHeight)
	return path, nil
}

// SetLineWidth sets the stroke width.
func (g *GraphicsState) SetLineWidth(w shared.LineWidth) error {
	if err := g.enterPageDescription(); err != nil {
		return err
	}
	g.properties.LineWidth.Set(w)
	return nil
}

// SetCapStyle sets the line cap.
func (g *GraphicsState) SetCapStyle(c shared.LineCap) error {
	if err := g.enterPageDescription(); err != nil {
		return err
	}
	g.properties.LineCap = c
	return nil
}

// SetDashPattern sets the dash array and phase.
func (g *GraphicsState) SetDashPattern(d shared.DashPattern) error {
	if err := g.enterPageDescription(); err != nil {
		return err
	}
	g.properties.DashPattern = d
	return nil
}

// SetStrokeColor stores stroking color components.
func (g *GraphicsState) SetStrokeColor(components []float32) error {
	if err := g.enterPageDescription(); err != nil {
		return err
	}
	return g.properties.StrokeColor.SetColor(components)
}

// SetNonStrokeColor stores non-stroking color components.
func (g *GraphicsState) SetNonStrokeColor(components []float32) error {
	if err := g.enterPageDescription(); err != nil {
		return err
	}
	return g.properties.NonStrokeColor.SetColor(components)
}

// SetStrokeColorSpace selects the stroking color space.
func (g *GraphicsState) SetStrokeColorSpace(space shared.ColorSpace) error {
	if err := g.enterPageDescription(); err != nil {
		return err
	}
	g.properties.StrokeColor.SetColorSpace(space)
	return nil
}

// SetNonStrokeColorSpace selects the non-stroking color space.
func (g *GraphicsState) SetNonStrokeColorSpace(space shared.ColorSpace) error {
	if err := g.enterPageDescription(); err != nil {
		return err
	}
	g.properties.NonStrokeColor.SetColorSpace(space)
	return nil
}

// BeginText enters the Text state.
func (g *GraphicsState) BeginText() error {
	return g.enterText()
}

// EndText leaves the Text state.
func (g *GraphicsState) EndText() error {
	if g.kind != stateText {
		return &StateAccessError{State: "Text"}
	}
	return g.enterPageDescription()
}

// Clip enters the ClippingPath state from a path under construction.
func (g *GraphicsState) Clip() error {
	return g.enterClippingPath()
}

// enterPageDescription transitions to PageDescription. Every state may
// return here, so this cannot fail; the error return keeps the transition
// helpers uniform.
func (g *GraphicsState) enterPageDescription() error {
	switch g.kind {
	case statePageDescription:
	case stateText, statePath, stateClippingPath:
		g.kind = statePageDescription
		g.path = nil
	}
	g.assertKind(statePageDescription)
	return nil
}

func (g *GraphicsState) enterText() error {
	switch g.kind {
	case statePageDescription:
		g.kind = stateText
	case stateText:
	case statePath:
		return &StateTransitionError{From: "Path", To: "Text"}
	case stateClippingPath:
		return &StateTransitionError{From: "ClippingPath", To: "Text"}
	}
	g.assertKind(stateText)
	return nil
}

// enterPath transitions to Path, installing a fresh path builder when
// coming from PageDescription.
func (g *GraphicsState) enterPath() error {
	switch g.kind {
	case statePageDescription:
		g.path = NewPath(g.pageWidth, g.pageHeight)
		g.kind = statePath
	case stateText:
		return &StateTransitionError{From: "Text", To: "Path"}
	case statePath:
	case stateClippingPath:
		return &StateTransitionError{From: "ClippingPath", To: "Path"}
	}
	g.assertKind(statePath)
	return nil
}

func (g *GraphicsState) enterClippingPath() error {
	switch g.kind {
	case statePageDescription:
		return &StateTransitionError{From: "PageDescription", To: "ClippingPath"}
	case stateText:
		return &StateTransitionError{From: "Text", To: "ClippingPath"}
	case statePath:
		g.kind = stateClippingPath
	case stateClippingPath:
	}
	g.assertKind(stateClippingPath)
	return nil
}

// assertKind checks a transition's post-condition.
func (g *GraphicsState) assertKind(want stateKind) {
	if g.kind != want {
		panic(fmt.Sprintf("graphics state is %s after a transition to %s", g.kind, want))
	}
}
