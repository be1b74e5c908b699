package pdf

import (
	"fmt"
	"math"

	"github.com/novvoo/go-pathkit/pkg/shared"
)

// Operator is one typed page-painting event from a content stream.
type Operator interface {
	isOperator()
}

// Text is a complete BT..ET text placement: font selection, position and
// the shown string, plus the fill color when the block set one. It is
// passed through to the consumer, not rendered.
type Text struct {
	FontFamily Name
	FontSize   float32
	Tx, Ty     float32
	RGB        *shared.RGB
	Contents   []byte
}

// CapStyle sets the line cap (operator J).
type CapStyle struct {
	Cap shared.LineCap
}

// MoveTo starts a new sub-path (operator m).
type MoveTo struct {
	X, Y float32
}

// LineTo appends a straight segment (operator l).
type LineTo struct {
	X, Y float32
}

// Rect appends a rectangle sub-path (operator re).
type Rect struct {
	X, Y   float32
	Width  shared.Width
	Height shared.Height
}

// CubicTo appends a cubic bezier segment (operators c, v and y). The
// short forms leave one control point implicit.
type CubicTo struct {
	X1, Y1 float32
	X2, Y2 float32
	X3, Y3 float32
	// ImplicitCtrl1 marks the v form: the first control point is the
	// current point.
	ImplicitCtrl1 bool
	// ImplicitCtrl2 marks the y form: the second control point coincides
	// with the endpoint.
	ImplicitCtrl2 bool
}

// ClosePath closes the current sub-path (operator h).
type ClosePath struct{}

// Stroke strokes the path (operators S and s); s closes it first.
type Stroke struct {
	Close bool
}

// Fill fills the path (operators f, F and f*). The winding rule
// distinction is deferred.
type Fill struct{}

// SetLineWidth sets the stroke width (operator w).
type SetLineWidth struct {
	Width shared.LineWidth
}

// StrokeColor sets stroking color components (operators SC, SCN, RG, G
// and K). Space is non-nil for the operators that imply a device space.
type StrokeColor struct {
	Components []float32
	Space      *shared.ColorSpace
}

// NonStrokeColor sets non-stroking color components (operators sc, scn,
// rg, g and k outside a text block).
type NonStrokeColor struct {
	Components []float32
	Space      *shared.ColorSpace
}

// StrokeColorSpace selects the stroking color space (operator CS).
type StrokeColorSpace struct {
	Space shared.ColorSpace
}

// NonStrokeColorSpace selects the non-stroking color space (operator cs).
type NonStrokeColorSpace struct {
	Space shared.ColorSpace
}

// SetDashPattern sets the dash array and phase (operator d).
type SetDashPattern struct {
	Pattern shared.DashPattern
}

func (Text) isOperator()                {}
func (CapStyle) isOperator()            {}
func (MoveTo) isOperator()              {}
func (LineTo) isOperator()              {}
func (Rect) isOperator()                {}
func (CubicTo) isOperator()             {}
func (ClosePath) isOperator()           {}
func (Stroke) isOperator()              {}
func (Fill) isOperator()                {}
func (SetLineWidth) isOperator()        {}
func (StrokeColor) isOperator()         {}
func (NonStrokeColor) isOperator()      {}
func (StrokeColorSpace) isOperator()    {}
func (NonStrokeColorSpace) isOperator() {}
func (SetDashPattern) isOperator()      {}

// ParseContent tokenizes a page's content bytes into a typed operator
// sequence. The whole input must be consumed: an unknown operator or a
// dangling operand run fails with TrailingContentError carrying the
// unparsed remainder.
func ParseContent(data []byte) ([]Operator, error) {
	p := &contentParser{s: newScanner(data, 0)}
	return p.parse()
}

type contentParser struct {
	s   *scanner
	ops []Operator

	stack      []Object
	stackStart int
}

func (p *contentParser) parse() ([]Operator, error) {
	s := p.s
	for {
		s.skipWhitespace()
		if s.eof() {
			break
		}
		if len(p.stack) == 0 {
			p.stackStart = s.pos
		}

		operand, ok, err := p.tryOperand()
		if err != nil {
			return nil, err
		}
		if ok {
			p.stack = append(p.stack, operand)
			continue
		}

		start := s.pos
		keyword := s.readRegularRun()
		if len(keyword) == 0 {
			return nil, &TrailingContentError{Remainder: s.rest()}
		}
		if string(keyword) == "BT" {
			if len(p.stack) != 0 {
				return nil, &TrailingContentError{Remainder: s.data[p.stackStart:]}
			}
			if err := p.parseTextBlock(); err != nil {
				return nil, err
			}
			continue
		}
		op, err := p.dispatch(string(keyword))
		if err != nil {
			if _, unknown := err.(*unknownOperatorError); unknown {
				return nil, &TrailingContentError{Remainder: s.data[start:]}
			}
			return nil, err
		}
		p.ops = append(p.ops, op)
		p.stack = p.stack[:0]
	}

	if len(p.stack) != 0 {
		return nil, &TrailingContentError{Remainder: p.s.data[p.stackStart:]}
	}
	return p.ops, nil
}

// tryOperand reads one operand (number, name, string or array) when the
// next token is one.
func (p *contentParser) tryOperand() (Object, bool, error) {
	s := p.s
	switch b := s.peek(); {
	case isDigit(b) || b == '+' || b == '-' || b == '.':
		obj, err := p.readSignedNumber()
		if err != nil {
			return nil, false, err
		}
		return obj, true, nil
	case b == '/':
		s.pos++
		name, err := s.readName()
		if err != nil {
			return nil, false, err
		}
		return name, true, nil
	case b == '(':
		s.pos++
		value, err := s.readLiteralString()
		if err != nil {
			return nil, false, err
		}
		return String{Value: value, Format: Literal}, true, nil
	case b == '<' && s.peekAt(1) != '<':
		s.pos++
		value, err := s.readHexString()
		if err != nil {
			return nil, false, err
		}
		return String{Value: value, Format: Hexadecimal}, true, nil
	case b == '[':
		s.pos++
		var arr Array
		for {
			s.skipWhitespace()
			if s.eof() {
				return nil, false, s.errorf("unterminated array operand")
			}
			if s.peek() == ']' {
				s.pos++
				return arr, true, nil
			}
			element, ok, err := p.tryOperand()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, s.errorf("unexpected byte %q in array operand", s.peek())
			}
			arr = append(arr, element)
		}
	}
	return nil, false, nil
}

// readSignedNumber reads a number with the permissive sign form seen in
// the wild: any run of interleaved + and - prefixes, where the result is
// negative iff the count of - characters is odd.
func (p *contentParser) readSignedNumber() (Object, error) {
	s := p.s
	minuses := 0
	for !s.eof() && (s.peek() == '+' || s.peek() == '-') {
		if s.next() == '-' {
			minuses++
		}
	}
	obj, err := s.readNumber()
	if err != nil {
		return nil, err
	}
	if minuses%2 == 0 {
		return obj, nil
	}
	switch v := obj.(type) {
	case Integer:
		return Integer(-v), nil
	case Real:
		return Real(-v), nil
	}
	return obj, nil
}

type unknownOperatorError struct {
	keyword string
}

func (e *unknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q", e.keyword)
}

func (p *contentParser) dispatch(keyword string) (Operator, error) {
	switch keyword {
	case "m":
		xy, err := p.popFloats(keyword, 2)
		if err != nil {
			return nil, err
		}
		return MoveTo{X: xy[0], Y: xy[1]}, nil
	case "l":
		xy, err := p.popFloats(keyword, 2)
		if err != nil {
			return nil, err
		}
		return LineTo{X: xy[0], Y: xy[1]}, nil
	case "re":
		v, err := p.popFloats(keyword, 4)
		if err != nil {
			return nil, err
		}
		return Rect{X: v[0], Y: v[1], Width: shared.Width(v[2]), Height: shared.Height(v[3])}, nil
	case "c":
		v, err := p.popFloats(keyword, 6)
		if err != nil {
			return nil, err
		}
		return CubicTo{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], X3: v[4], Y3: v[5]}, nil
	case "v":
		v, err := p.popFloats(keyword, 4)
		if err != nil {
			return nil, err
		}
		return CubicTo{X2: v[0], Y2: v[1], X3: v[2], Y3: v[3], ImplicitCtrl1: true}, nil
	case "y":
		v, err := p.popFloats(keyword, 4)
		if err != nil {
			return nil, err
		}
		return CubicTo{X1: v[0], Y1: v[1], X3: v[2], Y3: v[3], ImplicitCtrl2: true}, nil
	case "h":
		if err := p.expectOperands(keyword, 0); err != nil {
			return nil, err
		}
		return ClosePath{}, nil
	case "S":
		if err := p.expectOperands(keyword, 0); err != nil {
			return nil, err
		}
		return Stroke{Close: false}, nil
	case "s":
		if err := p.expectOperands(keyword, 0); err != nil {
			return nil, err
		}
		return Stroke{Close: true}, nil
	case "f", "F", "f*":
		if err := p.expectOperands(keyword, 0); err != nil {
			return nil, err
		}
		return Fill{}, nil
	case "J":
		v, err := p.popInt(keyword)
		if err != nil {
			return nil, err
		}
		switch v {
		case 0:
			return CapStyle{Cap: shared.CapButt}, nil
		case 1:
			return CapStyle{Cap: shared.CapRound}, nil
		case 2:
			return CapStyle{Cap: shared.CapSquare}, nil
		}
		return nil, &CapStyleError{Value: v}
	case "w":
		v, err := p.popFloats(keyword, 1)
		if err != nil {
			return nil, err
		}
		return SetLineWidth{Width: shared.LineWidth(v[0])}, nil
	case "d":
		return p.popDashPattern()
	case "sc", "scn":
		components, err := p.popColorComponents()
		if err != nil {
			return nil, err
		}
		return NonStrokeColor{Components: components}, nil
	case "SC", "SCN":
		components, err := p.popColorComponents()
		if err != nil {
			return nil, err
		}
		return StrokeColor{Components: components}, nil
	case "rg":
		v, err := p.popFloats(keyword, 3)
		if err != nil {
			return nil, err
		}
		return NonStrokeColor{Components: v, Space: colorSpacePtr(shared.DeviceRGB)}, nil
	case "RG":
		v, err := p.popFloats(keyword, 3)
		if err != nil {
			return nil, err
		}
		return StrokeColor{Components: v, Space: colorSpacePtr(shared.DeviceRGB)}, nil
	case "g":
		v, err := p.popFloats(keyword, 1)
		if err != nil {
			return nil, err
		}
		return NonStrokeColor{Components: v, Space: colorSpacePtr(shared.DeviceGray)}, nil
	case "G":
		v, err := p.popFloats(keyword, 1)
		if err != nil {
			return nil, err
		}
		return StrokeColor{Components: v, Space: colorSpacePtr(shared.DeviceGray)}, nil
	case "k":
		v, err := p.popFloats(keyword, 4)
		if err != nil {
			return nil, err
		}
		return NonStrokeColor{Components: v, Space: colorSpacePtr(shared.DeviceCMYK)}, nil
	case "K":
		v, err := p.popFloats(keyword, 4)
		if err != nil {
			return nil, err
		}
		return StrokeColor{Components: v, Space: colorSpacePtr(shared.DeviceCMYK)}, nil
	case "cs":
		space, err := p.popColorSpace(keyword)
		if err != nil {
			return nil, err
		}
		return NonStrokeColorSpace{Space: space}, nil
	case "CS":
		space, err := p.popColorSpace(keyword)
		if err != nil {
			return nil, err
		}
		return StrokeColorSpace{Space: space}, nil
	}
	return nil, &unknownOperatorError{keyword: keyword}
}

// parseTextBlock consumes operators between BT and ET and emits one Text
// per Tj, carrying the font, position and fill color set in the block.
func (p *contentParser) parseTextBlock() error {
	s := p.s
	var (
		fontFamily Name
		fontSize   float32
		tx, ty     float32
		rgb        *shared.RGB
	)
	for {
		s.skipWhitespace()
		if s.eof() {
			return s.errorf("text block without ET")
		}
		if len(p.stack) == 0 {
			p.stackStart = s.pos
		}

		operand, ok, err := p.tryOperand()
		if err != nil {
			return err
		}
		if ok {
			p.stack = append(p.stack, operand)
			continue
		}

		keyword := s.readRegularRun()
		switch string(keyword) {
		case "ET":
			if len(p.stack) != 0 {
				return &TrailingContentError{Remainder: s.data[p.stackStart:]}
			}
			return nil
		case "Tf":
			if err := p.expectOperands("Tf", 2); err != nil {
				return err
			}
			name, err := AsName(p.stack[0])
			if err != nil {
				return err
			}
			size, err := toFloat32(p.stack[1])
			if err != nil {
				return err
			}
			fontFamily, fontSize = name, size
			p.stack = p.stack[:0]
		case "Td":
			v, err := p.popFloats("Td", 2)
			if err != nil {
				return err
			}
			tx, ty = v[0], v[1]
		case "rg":
			v, err := p.popFloats("rg", 3)
			if err != nil {
				return err
			}
			c := shared.NewRGB(v[0], v[1], v[2])
			rgb = &c
		case "Tj":
			if err := p.expectOperands("Tj", 1); err != nil {
				return err
			}
			contents, err := AsString(p.stack[0])
			if err != nil {
				return err
			}
			p.stack = p.stack[:0]
			p.ops = append(p.ops, Text{
				FontFamily: fontFamily,
				FontSize:   fontSize,
				Tx:         tx,
				Ty:         ty,
				RGB:        rgb,
				Contents:   contents,
			})
		default:
			return &TrailingContentError{Remainder: s.data[p.stackStart:]}
		}
	}
}

func colorSpacePtr(s shared.ColorSpace) *shared.ColorSpace { return &s }

func (p *contentParser) expectOperands(keyword string, n int) error {
	if len(p.stack) != n {
		return p.s.errorf("operator %s expects %d operands, found %d", keyword, n, len(p.stack))
	}
	return nil
}

func (p *contentParser) popFloats(keyword string, n int) ([]float32, error) {
	if err := p.expectOperands(keyword, n); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i, obj := range p.stack {
		v, err := toFloat32(obj)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	p.stack = p.stack[:0]
	return out, nil
}

func (p *contentParser) popInt(keyword string) (int64, error) {
	if err := p.expectOperands(keyword, 1); err != nil {
		return 0, err
	}
	v, err := AsInt64(p.stack[0])
	if err != nil {
		return 0, err
	}
	p.stack = p.stack[:0]
	return v, nil
}

func (p *contentParser) popColorSpace(keyword string) (shared.ColorSpace, error) {
	if err := p.expectOperands(keyword, 1); err != nil {
		return 0, err
	}
	name, err := AsName(p.stack[0])
	if err != nil {
		return 0, err
	}
	p.stack = p.stack[:0]
	return shared.ParseColorSpace(string(name))
}

// popColorComponents takes the whole operand stack as a component vector;
// sc and friends accept 1, 3 or 4 operands.
func (p *contentParser) popColorComponents() ([]float32, error) {
	n := len(p.stack)
	if n != 1 && n != 3 && n != 4 {
		return nil, &shared.ColorParamError{Count: n}
	}
	out := make([]float32, n)
	for i, obj := range p.stack {
		v, err := toFloat32(obj)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	p.stack = p.stack[:0]
	return out, nil
}

// popDashPattern takes [array] phase operands.
func (p *contentParser) popDashPattern() (Operator, error) {
	if err := p.expectOperands("d", 2); err != nil {
		return nil, err
	}
	arr, err := AsArray(p.stack[0])
	if err != nil {
		return nil, err
	}
	segments := make([]float32, 0, len(arr))
	for _, obj := range arr {
		v, err := toFloat32(obj)
		if err != nil {
			return nil, err
		}
		segments = append(segments, v)
	}
	phase, err := toFloat32(p.stack[1])
	if err != nil {
		return nil, err
	}
	p.stack = p.stack[:0]
	return SetDashPattern{Pattern: shared.NewDashPattern(segments, phase)}, nil
}

// toFloat32 narrows a numeric object to float32.
func toFloat32(obj Object) (float32, error) {
	v, err := AsFloat(obj)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.Abs(v) > math.MaxFloat32 {
		return 0, fmt.Errorf("%w: %v does not fit in a float32", shared.ErrInvalidNumberConversion, v)
	}
	return float32(v), nil
}
