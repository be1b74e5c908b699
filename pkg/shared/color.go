package shared

import "fmt"

// ColorSpace identifies one of the device color spaces recognized by the
// content stream parser.
type ColorSpace int

const (
	DeviceRGB ColorSpace = iota
	DeviceGray
	DeviceCMYK
)

func (c ColorSpace) String() string {
	switch c {
	case DeviceRGB:
		return "DeviceRGB"
	case DeviceGray:
		return "DeviceGray"
	case DeviceCMYK:
		return "DeviceCMYK"
	}
	return fmt.Sprintf("ColorSpace(%d)", int(c))
}

// UnrecognizedColorSpaceError reports a color space name outside the
// supported device spaces.
type UnrecognizedColorSpaceError struct {
	Name string
}

func (e *UnrecognizedColorSpaceError) Error() string {
	return fmt.Sprintf("unrecognized color space: %s", e.Name)
}

// ParseColorSpace maps a color space name to its ColorSpace value.
func ParseColorSpace(name string) (ColorSpace, error) {
	switch name {
	case "DeviceRGB":
		return DeviceRGB, nil
	case "DeviceGray":
		return DeviceGray, nil
	case "DeviceCMYK":
		return DeviceCMYK, nil
	}
	return 0, &UnrecognizedColorSpaceError{Name: name}
}

// ColorParamError reports a color operator with an unusable operand count.
type ColorParamError struct {
	Count int
}

func (e *ColorParamError) Error() string {
	if e.Count == 0 {
		return "received 0 params for color, at least one is required"
	}
	return fmt.Sprintf("received %d params for color, max is four", e.Count)
}

func clampComponent(v float32) float32 {
	if v > 255.0 {
		return 255.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}

// RGB is a color in the DeviceRGB space.
type RGB struct {
	R, G, B float32
}

// NewRGB clamps each component into the representable range.
func NewRGB(r, g, b float32) RGB {
	return RGB{R: clampComponent(r), G: clampComponent(g), B: clampComponent(b)}
}

// CMYK is a color in the DeviceCMYK space.
type CMYK struct {
	C, M, Y, K float32
}

// NewCMYK clamps each component into the representable range.
func NewCMYK(c, m, y, k float32) CMYK {
	return CMYK{
		C: clampComponent(c),
		M: clampComponent(m),
		Y: clampComponent(y),
		K: clampComponent(k),
	}
}

// Gray is a color in the DeviceGray space.
type Gray struct {
	V float32
}

// NewGray clamps the component into the representable range.
func NewGray(v float32) Gray {
	return Gray{V: clampComponent(v)}
}

// ColorValue carries the last-set components of every device space along
// with the currently selected space. Color-space changes and color-value
// changes arrive independently in a content stream, so the components are
// not folded into a single variant.
type ColorValue struct {
	Space ColorSpace
	RGB   RGB
	CMYK  CMYK
	Gray  Gray
}

// NewStrokeColor is the initial stroking color of a graphics state.
func NewStrokeColor() ColorValue {
	return ColorValue{Space: DeviceGray}
}

// NewNonStrokeColor is the initial non-stroking color of a graphics state.
func NewNonStrokeColor() ColorValue {
	return ColorValue{Space: DeviceRGB}
}

// SetColorSpace selects the live space without touching any components.
func (c *ColorValue) SetColorSpace(s ColorSpace) { c.Space = s }

// SetColor stores a component vector. The vector's length picks the space
// it updates: one component is gray, three are RGB, four are CMYK. The
// currently selected space is left alone.
func (c *ColorValue) SetColor(components []float32) error {
	switch len(components) {
	case 0:
		return &ColorParamError{Count: 0}
	case 1:
		c.Gray = NewGray(components[0])
		return nil
	case 3:
		c.RGB = NewRGB(components[0], components[1], components[2])
		return nil
	case 4:
		c.CMYK = NewCMYK(components[0], components[1], components[2], components[3])
		return nil
	default:
		return &ColorParamError{Count: len(components)}
	}
}

// Current returns the live color under the selected space.
func (c *ColorValue) Current() CurrentColor {
	switch c.Space {
	case DeviceCMYK:
		return CurrentColor{Space: DeviceCMYK, CMYK: c.CMYK}
	case DeviceGray:
		return CurrentColor{Space: DeviceGray, Gray: c.Gray}
	default:
		return CurrentColor{Space: DeviceRGB, RGB: c.RGB}
	}
}

// CurrentColor is a color resolved against its space.
type CurrentColor struct {
	Space ColorSpace
	RGB   RGB
	CMYK  CMYK
	Gray  Gray
}
