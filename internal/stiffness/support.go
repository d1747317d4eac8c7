package stiffness

import (
	"strconv"
	"strings"
)

// Support is the restraint condition at a node. The numeric values are the
// support codes used in model files.
type Support int

const (
	Fixed  Support = iota // displacement and rotation restrained
	Type1                 // rotation restrained, vertical displacement free
	Pinned                // displacement restrained, rotation free
	Free                  // unrestrained
)

var supportNames = map[Support]string{
	Fixed:  "fixed",
	Type1:  "type1",
	Pinned: "pinned",
	Free:   "free",
}

// Valid reports whether s is one of the four known support kinds
func (s Support) Valid() bool {
	return s >= Fixed && s <= Free
}

func (s Support) String() string {
	if name, ok := supportNames[s]; ok {
		return name
	}
	return "Support(" + strconv.Itoa(int(s)) + ")"
}

// Description returns a long name for reports
func (s Support) Description() string {
	switch s {
	case Fixed:
		return "Fixed (embedded)"
	case Type1:
		return "Vertical slide (rotation restrained)"
	case Pinned:
		return "Pinned (rotation free)"
	case Free:
		return "Free end"
	}
	return s.String()
}

// SupportFromCode converts a numeric support code (0-3)
func SupportFromCode(code int) (Support, error) {
	s := Support(code)
	if !s.Valid() {
		return 0, newError(ErrInvalidSupportCode, "unknown support code %d (want 0-3)", code)
	}
	return s, nil
}

// ParseSupport accepts a support name or its numeric code
func ParseSupport(text string) (Support, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "fixed", "fix", "embedded":
		return Fixed, nil
	case "type1", "slide", "vertical-slide":
		return Type1, nil
	case "pinned", "pin", "hinge":
		return Pinned, nil
	case "free", "cantilever":
		return Free, nil
	}
	if code, err := strconv.Atoi(t); err == nil {
		return SupportFromCode(code)
	}
	return 0, newError(ErrInvalidSupportCode, "unknown support %q", text)
}

// Slot is a displacement or reaction entry at one DOF: either a known value
// or an unknown to be solved for.
type Slot struct {
	Known bool
	Value float64
}

// KnownValue returns a slot holding v
func KnownValue(v float64) Slot {
	return Slot{Known: true, Value: v}
}

// Unknown returns an unknown slot
func Unknown() Slot {
	return Slot{}
}

// Boundary holds the classified displacement and reaction slots of every DOF.
// DOF 2i is the vertical displacement of node i, DOF 2i+1 its rotation.
type Boundary struct {
	Displacement []Slot
	Reaction     []Slot

	// IgnoredOverrides lists DOFs where a nonzero R0 fell on a restrained
	// slot (unknown reaction) and could not be applied.
	IgnoredOverrides []int
}

// Resolve classifies every DOF from the node supports. r0 is optional; when
// given, its nonzero entries replace the zero of known reaction slots.
func Resolve(supports []Support, r0 []float64) (*Boundary, error) {
	ndof := 2 * len(supports)
	if len(r0) != 0 && len(r0) != ndof {
		return nil, newError(ErrDimensionMismatch, "R0 has %d entries, want %d (2 per node)", len(r0), ndof)
	}

	b := &Boundary{
		Displacement: make([]Slot, ndof),
		Reaction:     make([]Slot, ndof),
	}

	for i, s := range supports {
		dy, rz := 2*i, 2*i+1
		switch s {
		case Fixed:
			b.Displacement[dy], b.Displacement[rz] = KnownValue(0), KnownValue(0)
			b.Reaction[dy], b.Reaction[rz] = Unknown(), Unknown()
		case Type1:
			b.Displacement[dy], b.Displacement[rz] = Unknown(), KnownValue(0)
			b.Reaction[dy], b.Reaction[rz] = KnownValue(0), Unknown()
		case Pinned:
			b.Displacement[dy], b.Displacement[rz] = KnownValue(0), Unknown()
			b.Reaction[dy], b.Reaction[rz] = Unknown(), KnownValue(0)
		case Free:
			b.Displacement[dy], b.Displacement[rz] = Unknown(), Unknown()
			b.Reaction[dy], b.Reaction[rz] = KnownValue(0), KnownValue(0)
		default:
			return nil, newError(ErrInvalidSupportCode, "node %d: %v", i+1, s)
		}
	}

	for i, v := range r0 {
		if v == 0 {
			continue
		}
		if !finite(v) {
			return nil, newError(ErrNumericDomain, "R0[%d] is not finite", i)
		}
		if !b.Reaction[i].Known {
			b.IgnoredOverrides = append(b.IgnoredOverrides, i)
			continue
		}
		b.Reaction[i] = KnownValue(v)
	}

	return b, nil
}

// UnknownDisplacements returns the DOF indices whose displacement is unknown,
// in ascending order.
func (b *Boundary) UnknownDisplacements() []int {
	var j []int
	for i, s := range b.Displacement {
		if !s.Known {
			j = append(j, i)
		}
	}
	return j
}
