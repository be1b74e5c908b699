package graphics

import (
	"fmt"

	"github.com/novvoo/go-pathkit/pkg/pdf"
	"github.com/novvoo/go-pathkit/pkg/shared"
)

// DrawKind tells the consumer whether a drawing is filled or stroked.
type DrawKind int

const (
	DrawFill DrawKind = iota
	DrawStroke
)

func (k DrawKind) String() string {
	if k == DrawStroke {
		return "stroke"
	}
	return "fill"
}

// PathDrawing is one finished path handed downstream: its event sequence,
// the properties in force when it was painted, and how to paint it.
type PathDrawing struct {
	Events     []PathEvent
	Properties Properties
	Kind       DrawKind
}

// Consumer receives finished drawings and text placements in operator
// order. A tessellator sits behind this interface.
type Consumer interface {
	Draw(PathDrawing)
	PlaceText(pdf.Text)
}

// Renderer drives a page's operator sequence through the graphics state
// machine.
type Renderer struct {
	state *GraphicsState
}

// NewRenderer builds a renderer for a page of the given size.
func NewRenderer(width shared.PageWidth, height shared.PageHeight) *Renderer {
	return &Renderer{state: NewGraphicsState(width, height)}
}

// State exposes the underlying graphics state.
func (r *Renderer) State() *GraphicsState { return r.state }

// Render processes the operators in order, sending each finished drawing
// and text placement to the consumer. The first failing operator aborts
// the page.
func (r *Renderer) Render(ops []pdf.Operator, consumer Consumer) error {
	for _, op := range ops {
		if err := r.process(op, consumer); err != nil {
			return fmt.Errorf("operator %T: %w", op, err)
		}
	}
	return nil
}

// RenderAll collects the drawings and text placements of a page.
func (r *Renderer) RenderAll(ops []pdf.Operator) ([]PathDrawing, []pdf.Text, error) {
	var collector drawingCollector
	if err := r.Render(ops, &collector); err != nil {
		return nil, nil, err
	}
	return collector.drawings, collector.texts, nil
}

type drawingCollector struct {
	drawings []PathDrawing
	texts    []pdf.Text
}

func (c *drawingCollector) Draw(d PathDrawing)   { c.drawings = append(c.drawings, d) }
func (c *drawingCollector) PlaceText(t pdf.Text) { c.texts = append(c.texts, t) }

func (r *Renderer) process(op pdf.Operator, consumer Consumer) error {
	g := r.state
	switch v := op.(type) {
	case pdf.MoveTo:
		return g.MoveTo(v.X, v.Y)
	case pdf.LineTo:
		return g.LineTo(v.X, v.Y)
	case pdf.Rect:
		return g.Rect(v.X, v.Y, v.Width, v.Height)
	case pdf.CubicTo:
		switch {
		case v.ImplicitCtrl1:
			return g.CubicBezierToV(v.X2, v.Y2, v.X3, v.Y3)
		case v.ImplicitCtrl2:
			return g.CubicBezierToY(v.X1, v.Y1, v.X3, v.Y3)
		default:
			return g.CubicBezierTo(v.X1, v.Y1, v.X2, v.Y2, v.X3, v.Y3)
		}
	case pdf.ClosePath:
		return g.ClosePath()
	case pdf.Fill:
		events, err := g.Fill()
		if err != nil {
			return err
		}
		consumer.Draw(PathDrawing{
			Events:     events,
			Properties: g.Properties().Clone(),
			Kind:       DrawFill,
		})
		return nil
	case pdf.Stroke:
		events, err := g.Stroke(v.Close)
		if err != nil {
			return err
		}
		consumer.Draw(PathDrawing{
			Events:     events,
			Properties: g.Properties().Clone(),
			Kind:       DrawStroke,
		})
		return nil
	case pdf.CapStyle:
		return g.SetCapStyle(v.Cap)
	case pdf.SetLineWidth:
		return g.SetLineWidth(v.Width)
	case pdf.SetDashPattern:
		return g.SetDashPattern(v.Pattern)
	case pdf.StrokeColor:
		if v.Space != nil {
			if err := g.SetStrokeColorSpace(*v.Space); err != nil {
				return err
			}
		}
		return g.SetStrokeColor(v.Components)
	case pdf.NonStrokeColor:
		if v.Space != nil {
			if err := g.SetNonStrokeColorSpace(*v.Space); err != nil {
				return err
			}
		}
		return g.SetNonStrokeColor(v.Components)
	case pdf.StrokeColorSpace:
		return g.SetStrokeColorSpace(v.Space)
	case pdf.NonStrokeColorSpace:
		return g.SetNonStrokeColorSpace(v.Space)
	case pdf.Text:
		if err := g.BeginText(); err != nil {
			return err
		}
		consumer.PlaceText(v)
		return g.EndText()
	}
	return fmt.Errorf("%w: operator %T", pdf.ErrUnsupported, op)
}

// RenderPage parses a page's content and renders it into the consumer.
func RenderPage(doc *pdf.Document, pageID pdf.ObjectID, consumer Consumer) error {
	content, err := doc.PageContents(pageID)
	if err != nil {
		return err
	}
	ops, err := pdf.ParseContent(content)
	if err != nil {
		return err
	}
	box, err := doc.PageMediaBox(pageID)
	if err != nil {
		return err
	}
	r := NewRenderer(shared.PageWidth(box.Width()), shared.PageHeight(box.Height()))
	return r.Render(ops, consumer)
}
