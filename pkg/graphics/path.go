package graphics

import "github.com/novvoo/go-pathkit/pkg/shared"

// PathEvent is one event of a path event sequence. A well-formed sequence
// is a concatenation of sub-paths, each starting with exactly one Begin,
// carrying zero or more segment events, and ending with exactly one End.
type PathEvent interface {
	isPathEvent()
}

// Begin opens a sub-path.
type Begin struct {
	At Point
}

// Line is a straight segment.
type Line struct {
	From, To Point
}

// Quadratic is a quadratic bezier segment.
type Quadratic struct {
	From, Ctrl, To Point
}

// Cubic is a cubic bezier segment.
type Cubic struct {
	From, Ctrl1, Ctrl2, To Point
}

// End terminates a sub-path.
type End struct {
	First, Last Point
	Close       bool
}

func (Begin) isPathEvent()     {}
func (Line) isPathEvent()      {}
func (Quadratic) isPathEvent() {}
func (Cubic) isPathEvent()     {}
func (End) isPathEvent()       {}

// Path accumulates the events of one in-progress path in the internal
// coordinate space. Input coordinates are PDF page coordinates; they are
// mapped through (x, y) -> (-pageWidth/2 + x, pageHeight/2 - y).
type Path struct {
	events    []PathEvent
	drawState DrawState

	// bottomLeft is the PDF origin expressed in internal coordinates.
	bottomLeft Point
	current    Point
}

// NewPath builds an empty path for a page of the given size.
func NewPath(width shared.PageWidth, height shared.PageHeight) *Path {
	return &Path{
		bottomLeft: Point{X: -float32(width) / 2, Y: float32(height) / 2},
	}
}

// transform maps a PDF page coordinate into the internal space.
func (p *Path) transform(x, y float32) Point {
	return Point{X: p.bottomLeft.X + x, Y: p.bottomLeft.Y - y}
}

// MoveTo opens a new sub-path. An open sub-path is ended without closing
// first.
func (p *Path) MoveTo(x, y float32) error {
	if err := p.endIfNeeded(); err != nil {
		return err
	}
	return p.begin(p.transform(x, y))
}

// LineTo appends a straight segment. A line without an open sub-path
// begins one implicitly: at the page's bottom-left corner (the PDF origin)
// when the path is still empty, else at the current position.
func (p *Path) LineTo(x, y float32) error {
	if err := p.beginIfNeeded(); err != nil {
		return err
	}
	if err := p.drawState.MakeCommands(LineToCommand); err != nil {
		return err
	}
	commands, err := p.drawState.AssertIsCommands()
	if err != nil {
		return err
	}
	to := p.transform(x, y)
	p.events = append(p.events, Line{From: commands.Current, To: to})
	p.current = to
	return p.drawState.SetCurrent(to)
}

// CubicBezierTo appends a cubic bezier segment with both control points
// given in page coordinates.
func (p *Path) CubicBezierTo(ctrl1X, ctrl1Y, ctrl2X, ctrl2Y, x, y float32) error {
	return p.cubic(p.transform(ctrl1X, ctrl1Y), p.transform(ctrl2X, ctrl2Y), p.transform(x, y), false, false)
}

// CubicBezierToV appends a cubic segment whose first control point is the
// current point (operator v).
func (p *Path) CubicBezierToV(ctrl2X, ctrl2Y, x, y float32) error {
	return p.cubic(Point{}, p.transform(ctrl2X, ctrl2Y), p.transform(x, y), true, false)
}

// CubicBezierToY appends a cubic segment whose second control point
// coincides with the endpoint (operator y).
func (p *Path) CubicBezierToY(ctrl1X, ctrl1Y, x, y float32) error {
	return p.cubic(p.transform(ctrl1X, ctrl1Y), Point{}, p.transform(x, y), false, true)
}

func (p *Path) cubic(ctrl1, ctrl2, to Point, implicit1, implicit2 bool) error {
	if err := p.beginIfNeeded(); err != nil {
		return err
	}
	if err := p.drawState.MakeCommands(CubicBezierCommand); err != nil {
		return err
	}
	commands, err := p.drawState.AssertIsCommands()
	if err != nil {
		return err
	}
	if implicit1 {
		ctrl1 = commands.Current
	}
	if implicit2 {
		ctrl2 = to
	}
	p.events = append(p.events, Cubic{From: commands.Current, Ctrl1: ctrl1, Ctrl2: ctrl2, To: to})
	p.current = to
	return p.drawState.SetCurrent(to)
}

// QuadraticBezierTo appends a quadratic bezier segment.
func (p *Path) QuadraticBezierTo(ctrlX, ctrlY, x, y float32) error {
	if err := p.beginIfNeeded(); err != nil {
		return err
	}
	if err := p.drawState.MakeCommands(QuadraticBezierCommand); err != nil {
		return err
	}
	commands, err := p.drawState.AssertIsCommands()
	if err != nil {
		return err
	}
	ctrl := p.transform(ctrlX, ctrlY)
	to := p.transform(x, y)
	p.events = append(p.events, Quadratic{From: commands.Current, Ctrl: ctrl, To: to})
	p.current = to
	return p.drawState.SetCurrent(to)
}

// Rect appends a rectangle as a move and three lines. Degenerate
// rectangles are widened to one unit per side so a later fill keeps them
// visible.
func (p *Path) Rect(x, y float32, width shared.Width, height shared.Height) error {
	w := float32(width)
	if w < 1.0 {
		w = 1.0
	}
	h := float32(height)
	if h < 1.0 {
		h = 1.0
	}
	if err := p.MoveTo(x, y); err != nil {
		return err
	}
	if err := p.LineTo(x+w, y); err != nil {
		return err
	}
	if err := p.LineTo(x+w, y+h); err != nil {
		return err
	}
	return p.LineTo(x, y+h)
}

// Close ends the current sub-path, connecting it back to its start.
func (p *Path) Close() error {
	return p.End(true)
}

// End terminates the current sub-path. A sub-path with no segments ends
// unclosed regardless of close.
func (p *Path) End(close bool) error {
	if err := p.drawState.AssertIsNotInactive(); err != nil {
		return err
	}
	if first, err := p.drawState.AssertIsActive(); err == nil {
		p.events = append(p.events, End{First: first, Last: first, Close: false})
		return p.drawState.MakeInactive()
	}
	commands, err := p.drawState.AssertIsCommands()
	if err != nil {
		return err
	}
	p.events = append(p.events, End{First: commands.First, Last: commands.Current, Close: close})
	return p.drawState.MakeInactive()
}

// Build hands over the accumulated events and resets the builder.
func (p *Path) Build() ([]PathEvent, error) {
	if err := p.endIfNeeded(); err != nil {
		return nil, err
	}
	events := p.events
	p.events = nil
	return events, p.drawState.MakeInactive()
}

func (p *Path) begin(at Point) error {
	if err := p.drawState.AssertIsInactive(); err != nil {
		return err
	}
	p.events = append(p.events, Begin{At: at})
	p.current = at
	return p.drawState.MakeActive(at)
}

// beginIfNeeded opens a sub-path for a segment that arrived without a
// move. An empty path starts at the page's bottom-left corner (the PDF
// origin); otherwise the new
// sub-path continues from the current position.
func (p *Path) beginIfNeeded() error {
	if !p.drawState.IsInactive() {
		return nil
	}
	if len(p.events) == 0 {
		return p.begin(p.bottomLeft)
	}
	return p.begin(p.current)
}

// endIfNeeded ends an open sub-path without closing it.
func (p *Path) endIfNeeded() error {
	if p.drawState.IsInactive() {
		return nil
	}
	return p.End(false)
}

// MakeFillableIfNeeded rewrites every sub-path that consists of a single
// line into a one-unit wide rectangle along that line, so that a fill has
// an interior to paint. Replacements, insertions and end replacements are
// collected during one scan and applied afterwards, because inserting into
// the event slice while iterating would invalidate the window indices.
// Applying the transform a second time matches nothing.
func (p *Path) MakeFillableIfNeeded() {
	type edit struct {
		index int
		event PathEvent
	}
	var replacements []edit
	var insertions []edit
	var endReplacements []edit

	matches := 0
	for i := 0; i+2 < len(p.events); i++ {
		if _, ok := p.events[i].(Begin); !ok {
			continue
		}
		line, ok := p.events[i+1].(Line)
		if !ok {
			continue
		}
		if _, ok := p.events[i+2].(End); !ok {
			continue
		}

		from, to := line.From, line.To
		if from == to {
			// Give a dot a positive length so the rectangle is visible.
			to = Point{X: to.X + 1.0, Y: to.Y - 1.0}
		}
		c := AsRect(from, to)

		replacements = append(replacements,
			edit{index: i, event: Begin{At: c[0]}},
			edit{index: i + 1, event: Line{From: c[0], To: c[1]}},
		)
		insertions = append(insertions,
			edit{index: i + 3, event: Line{From: c[2], To: c[3]}},
			edit{index: i + 2, event: Line{From: c[1], To: c[2]}},
		)
		// Two events are inserted per earlier match, shifting this
		// sub-path's End accordingly.
		endReplacements = append(endReplacements,
			edit{index: i + 4 + 2*matches, event: End{First: c[0], Last: c[3], Close: true}},
		)
		matches++
	}

	for _, r := range replacements {
		p.events[r.index] = r.event
	}
	for i := len(insertions) - 1; i >= 0; i-- {
		ins := insertions[i]
		p.events = append(p.events, nil)
		copy(p.events[ins.index+1:], p.events[ins.index:])
		p.events[ins.index] = ins.event
	}
	for _, r := range endReplacements {
		p.events[r.index] = r.event
	}
}
