package section

import "fmt"

// Section represents a beam cross-section, either a rectangle given by its
// width and height or a simple polygon given by its vertices.
// Vertices are in a local coordinate system where:
// - Y-axis points upward
// - X-axis points to the right
// - Origin can be at any convenient location
type Section struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Rectangular shortcut (in mm)
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// Section geometry defined by vertices (in mm)
	// Vertices may be listed in either direction; the polygon is assumed
	// to be simple (no holes, no self-intersection)
	Vertices []Point `json:"vertices,omitempty" yaml:"vertices,omitempty"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"` // mm
	Y float64 `json:"y" yaml:"y"` // mm
}

// SectionProperties holds calculated geometric properties
type SectionProperties struct {
	// Overall dimensions
	Width  float64 // Maximum width (mm)
	Height float64 // Total height (mm)
	Area   float64 // Gross area (mm²)

	// Centroid location
	CentroidX float64 // mm
	CentroidY float64 // mm

	// Second moment of area about the horizontal centroidal axis
	Ix float64 // mm⁴

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// IsRectangle reports whether the section uses the width/height shortcut
func (s *Section) IsRectangle() bool {
	return len(s.Vertices) == 0
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if s.IsRectangle() {
		if s.Width <= 0 || s.Height <= 0 {
			return &ValidationError{msg: fmt.Sprintf("rectangular section needs positive width and height, got %.2f x %.2f mm", s.Width, s.Height)}
		}
		return nil
	}
	if len(s.Vertices) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	if area, _, _ := s.calculateAreaAndCentroid(); area <= 0 {
		return &ValidationError{"section vertices enclose no area"}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
