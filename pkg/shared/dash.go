package shared

// LineCap selects the shape painted at the ends of open stroked sub-paths.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "Butt"
	case CapRound:
		return "Round"
	case CapSquare:
		return "Square"
	}
	return "LineCap(?)"
}

// DashPattern is the dash segment lengths plus the phase offset into them.
// An empty array means a solid line.
type DashPattern struct {
	Array []float32
	Phase float32
}

// NewDashPattern builds a dash pattern from segment lengths and a phase.
func NewDashPattern(array []float32, phase float32) DashPattern {
	return DashPattern{Array: array, Phase: phase}
}

// IsSolid reports whether the pattern draws an unbroken line.
func (d DashPattern) IsSolid() bool { return len(d.Array) == 0 }
