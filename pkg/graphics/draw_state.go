package graphics

// Command is one of the segment kinds a sub-path can record.
type Command int

const (
	LineToCommand Command = iota
	CubicBezierCommand
	QuadraticBezierCommand
)

func (c Command) String() string {
	switch c {
	case LineToCommand:
		return "LineTo"
	case CubicBezierCommand:
		return "CubicBezier"
	case QuadraticBezierCommand:
		return "QuadraticBezier"
	}
	return "Command(?)"
}

type drawStateKind int

const (
	drawInactive drawStateKind = iota
	drawActive
	drawCommands
)

func (k drawStateKind) String() string {
	switch k {
	case drawInactive:
		return "Inactive"
	case drawActive:
		return "Active"
	case drawCommands:
		return "Commands"
	}
	return "DrawState(?)"
}

// Commands is the data carried while a sub-path records segments. Current
// advances as segments land; the per-kind flags record which segment kinds
// the sub-path has seen.
type Commands struct {
	First           Point
	Current         Point
	LineTo          bool
	CubicBezier     bool
	QuadraticBezier bool
}

// DrawState is the lifecycle of a single sub-path: Inactive until a move
// opens it, Active while it only has a start point, Commands once segments
// have been recorded. Commands never starts without passing through
// Active.
type DrawState struct {
	kind     drawStateKind
	first    Point
	commands Commands
}

// AssertIsInactive fails unless no sub-path is open.
func (d *DrawState) AssertIsInactive() error {
	if d.kind != drawInactive {
		return &StateAccessError{State: "Inactive"}
	}
	return nil
}

// AssertIsNotInactive fails when no sub-path is open.
func (d *DrawState) AssertIsNotInactive() error {
	if d.kind == drawInactive {
		return &StateAssertionError{State: "Inactive"}
	}
	return nil
}

// AssertIsActive returns the sub-path's start point.
func (d *DrawState) AssertIsActive() (Point, error) {
	if d.kind != drawActive {
		return Point{}, &StateAccessError{State: "Active"}
	}
	return d.first, nil
}

// AssertIsCommands returns the recorded command data.
func (d *DrawState) AssertIsCommands() (Commands, error) {
	if d.kind != drawCommands {
		return Commands{}, &StateAccessError{State: "Commands"}
	}
	return d.commands, nil
}

// IsInactive reports whether no sub-path is open.
func (d *DrawState) IsInactive() bool { return d.kind == drawInactive }

// MakeInactive ends the sub-path from any state.
func (d *DrawState) MakeInactive() error {
	d.kind = drawInactive
	return nil
}

// MakeActive opens a sub-path at the given point. Opening on top of
// recorded commands is refused; the caller has to end the sub-path first.
func (d *DrawState) MakeActive(at Point) error {
	switch d.kind {
	case drawInactive:
		d.kind = drawActive
		d.first = at
	case drawActive:
		// Already open; the original start point stands.
	case drawCommands:
		return &StateTransitionError{From: "Commands", To: "Active"}
	}
	return nil
}

// MakeCommands records a segment kind. The first segment promotes Active
// to Commands with current carried forward from the start point.
func (d *DrawState) MakeCommands(command Command) error {
	switch d.kind {
	case drawInactive:
		return &StateTransitionError{From: "Inactive", To: "Commands"}
	case drawActive:
		d.commands = Commands{First: d.first, Current: d.first}
		d.kind = drawCommands
	}
	switch command {
	case LineToCommand:
		d.commands.LineTo = true
	case CubicBezierCommand:
		d.commands.CubicBezier = true
	case QuadraticBezierCommand:
		d.commands.QuadraticBezier = true
	}
	return nil
}

// SetCurrent advances the recorded current point after a segment lands.
func (d *DrawState) SetCurrent(p Point) error {
	if d.kind != drawCommands {
		return &StateAccessError{State: "Commands"}
	}
	d.commands.Current = p
	return nil
}
