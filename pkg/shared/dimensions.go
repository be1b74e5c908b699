// Package shared holds the small value types used on both sides of the
// pipeline: dimensioned scalars, colors, color spaces and dash patterns.
// It must not depend on any other package in this module.
package shared

// Width is a horizontal extent in user units.
type Width float32

// Height is a vertical extent in user units.
type Height float32

// PageWidth is the width of a page's media box in user units.
type PageWidth float32

// PageHeight is the height of a page's media box in user units.
type PageHeight float32

// LineWidth is a stroke width in user units.
type LineWidth float32

// DefaultLineWidth is the initial line width of a fresh graphics state.
const DefaultLineWidth = LineWidth(1.0)

// Set replaces the receiver's value.
func (w *LineWidth) Set(v LineWidth) { *w = v }
