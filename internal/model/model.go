package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gocbeam/internal/nscp"
	"github.com/alexiusacademia/gocbeam/internal/section"
	"github.com/alexiusacademia/gocbeam/internal/stiffness"
)

// Load types accepted in model files
const (
	LoadPoint       = "point"
	LoadDistributed = "distributed"
	LoadMoment      = "moment"
)

// Model represents a continuous beam as written in a model file.
// Lengths are in meters, forces in kN and moments in kN·m.
// Positive forces act downward and positive moments act clockwise.
type Model struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Material: either E directly or f'c of normal-weight concrete
	EGPa  float64 `json:"e_gpa,omitempty" yaml:"e_gpa,omitempty"`   // modulus of elasticity (GPa)
	FcMPa float64 `json:"fc_mpa,omitempty" yaml:"fc_mpa,omitempty"` // concrete strength (MPa)

	// Section: either I directly or a cross-section to compute it from
	IM4     float64          `json:"i_m4,omitempty" yaml:"i_m4,omitempty"` // second moment of area (m⁴)
	Section *section.Section `json:"section,omitempty" yaml:"section,omitempty"`

	Spans      []float64     `json:"spans" yaml:"spans"`       // m
	Supports   []SupportSpec `json:"supports" yaml:"supports"` // one per node
	NodalLoads []NodalLoad   `json:"nodal_loads,omitempty" yaml:"nodal_loads,omitempty"`
	Loads      []SpanLoad    `json:"loads,omitempty" yaml:"loads,omitempty"`
}

// SupportSpec is a support name ("fixed", "pinned", ...) or code ("0".."3")
type SupportSpec string

// UnmarshalJSON accepts both a string and a bare number
func (s *SupportSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = SupportSpec(text)
		return nil
	}
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("support must be a name or a code: %w", err)
	}
	*s = SupportSpec(strconv.Itoa(code))
	return nil
}

// NodalLoad represents a force and/or moment applied directly at a node
type NodalLoad struct {
	Node   int     `json:"node" yaml:"node"`                         // 1-based
	Force  float64 `json:"force,omitempty" yaml:"force,omitempty"`   // kN, downward
	Moment float64 `json:"moment,omitempty" yaml:"moment,omitempty"` // kN·m, clockwise
	Case   string  `json:"case,omitempty" yaml:"case,omitempty"`     // load case, default D
}

// SpanLoad represents a load on one span
type SpanLoad struct {
	Span  int     `json:"span" yaml:"span"` // 1-based
	Type  string  `json:"type" yaml:"type"` // point, distributed or moment
	Value float64 `json:"value" yaml:"value"`

	// Position of point loads and moments from the left node (m)
	Position float64 `json:"position,omitempty" yaml:"position,omitempty"`

	// Start and loaded length of distributed loads (m); a zero length
	// runs to the end of the span
	Start  float64 `json:"start,omitempty" yaml:"start,omitempty"`
	Length float64 `json:"length,omitempty" yaml:"length,omitempty"`

	Case string `json:"case,omitempty" yaml:"case,omitempty"` // load case, default D
}

// ValidationError represents a model validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validate checks the model before any analysis
func (m *Model) Validate() error {
	if len(m.Spans) == 0 {
		return invalid("model must have at least one span")
	}
	for i, l := range m.Spans {
		if !(l > 0) || math.IsInf(l, 0) {
			return invalid("spans[%d]: length must be positive, got %g m", i+1, l)
		}
	}

	if m.EGPa <= 0 && m.FcMPa <= 0 {
		return invalid("either e_gpa or fc_mpa must be positive")
	}
	if m.IM4 <= 0 {
		if m.Section == nil {
			return invalid("either i_m4 or section must be given")
		}
		if err := m.Section.Validate(); err != nil {
			return invalid("section: %v", err)
		}
	}

	if len(m.Supports) != len(m.Spans)+1 {
		return invalid("%d supports for %d spans, want %d", len(m.Supports), len(m.Spans), len(m.Spans)+1)
	}
	if _, err := m.SupportKinds(); err != nil {
		return err
	}

	for i, nl := range m.NodalLoads {
		if nl.Node < 1 || nl.Node > len(m.Spans)+1 {
			return invalid("nodal_loads[%d]: node %d out of range (1-%d)", i+1, nl.Node, len(m.Spans)+1)
		}
		if _, err := nscp.NormalizeCase(nl.Case); err != nil {
			return invalid("nodal_loads[%d]: %v", i+1, err)
		}
	}

	for i, ld := range m.Loads {
		if ld.Span < 1 || ld.Span > len(m.Spans) {
			return invalid("loads[%d]: span %d out of range (1-%d)", i+1, ld.Span, len(m.Spans))
		}
		if _, err := nscp.NormalizeCase(ld.Case); err != nil {
			return invalid("loads[%d]: %v", i+1, err)
		}
		el, err := ld.element(m.Spans[ld.Span-1], 1)
		if err != nil {
			return invalid("loads[%d]: %v", i+1, err)
		}
		if err := stiffness.ValidateLoad(el, m.Spans[ld.Span-1]); err != nil {
			return invalid("loads[%d]: %v", i+1, err)
		}
	}

	return nil
}

// SupportKinds parses the support list
func (m *Model) SupportKinds() ([]stiffness.Support, error) {
	kinds := make([]stiffness.Support, len(m.Supports))
	for i, spec := range m.Supports {
		s, err := stiffness.ParseSupport(string(spec))
		if err != nil {
			return nil, invalid("supports[%d]: %v", i+1, err)
		}
		kinds[i] = s
	}
	return kinds, nil
}

// Modulus returns E in kN/m²
func (m *Model) Modulus() float64 {
	if m.EGPa > 0 {
		return m.EGPa * 1e6
	}
	return nscp.Ec(m.FcMPa) * 1e3
}

// Inertia returns I in m⁴
func (m *Model) Inertia() float64 {
	if m.IM4 > 0 {
		return m.IM4
	}
	if m.Section == nil {
		return 0
	}
	return m.Section.MomentOfInertia()
}

// Cases lists the load cases that appear in the model, in table order
func (m *Model) Cases() []string {
	seen := make(map[string]bool)
	mark := func(name string) {
		if c, err := nscp.NormalizeCase(name); err == nil {
			seen[c] = true
		}
	}
	for _, nl := range m.NodalLoads {
		mark(nl.Case)
	}
	for _, ld := range m.Loads {
		mark(ld.Case)
	}

	var cases []string
	for _, c := range nscp.Cases {
		if seen[c] {
			cases = append(cases, c)
		}
	}
	return cases
}

// Input builds the analysis input with the combination's load factors
// applied. Loads whose case has a zero factor are left out.
func (m *Model) Input(combo nscp.LoadCombination) (stiffness.Input, error) {
	if err := m.Validate(); err != nil {
		return stiffness.Input{}, err
	}
	supports, err := m.SupportKinds()
	if err != nil {
		return stiffness.Input{}, err
	}

	in := stiffness.Input{
		E:        m.Modulus(),
		I:        m.Inertia(),
		Spans:    append([]float64(nil), m.Spans...),
		Supports: supports,
		Loads:    make([][]stiffness.Load, len(m.Spans)),
	}

	for _, ld := range m.Loads {
		factor := combo.Factor(ld.Case)
		if factor == 0 {
			continue
		}
		el, err := ld.element(m.Spans[ld.Span-1], factor)
		if err != nil {
			return stiffness.Input{}, err
		}
		in.Loads[ld.Span-1] = append(in.Loads[ld.Span-1], el)
	}

	if len(m.NodalLoads) > 0 {
		in.R0 = make([]float64, 2*(len(m.Spans)+1))
		for _, nl := range m.NodalLoads {
			factor := combo.Factor(nl.Case)
			dof := 2 * (nl.Node - 1)
			in.R0[dof] -= factor * nl.Force
			in.R0[dof+1] -= factor * nl.Moment
		}
	}

	return in, nil
}

// element converts a span load to the engine's load type, scaled by factor
func (ld SpanLoad) element(spanLength, factor float64) (stiffness.Load, error) {
	switch strings.ToLower(strings.TrimSpace(ld.Type)) {
	case LoadPoint:
		return stiffness.PointLoad{P: factor * ld.Value, A: ld.Position}, nil
	case LoadDistributed, "uniform", "udl":
		length := ld.Length
		if length == 0 {
			length = spanLength - ld.Start
		}
		return stiffness.DistributedLoad{Q: factor * ld.Value, A: ld.Start, Length: length}, nil
	case LoadMoment:
		return stiffness.MomentConcentrated{M: factor * ld.Value, A: ld.Position}, nil
	}
	return nil, fmt.Errorf("unknown load type %q (want point, distributed or moment)", ld.Type)
}
