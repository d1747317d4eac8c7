package section

import "math"

// Rectangle returns the vertices of a width x height rectangle with its
// bottom-left corner at the origin, counter-clockwise
func Rectangle(width, height float64) []Point {
	return []Point{{0, 0}, {width, 0}, {width, height}, {0, height}}
}

// Polygon returns the vertices of the section, expanding the rectangular
// shortcut when no vertices are given
func (s *Section) Polygon() []Point {
	if s.IsRectangle() {
		return Rectangle(s.Width, s.Height)
	}
	return s.Vertices
}

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() *SectionProperties {
	props := &SectionProperties{}
	vertices := s.Polygon()

	if len(vertices) < 3 {
		return props
	}

	// Find bounding box
	props.MinX, props.MaxX = vertices[0].X, vertices[0].X
	props.MinY, props.MaxY = vertices[0].Y, vertices[0].Y

	for _, v := range vertices {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}

	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	if s.IsRectangle() {
		props.Area = s.Width * s.Height
		props.CentroidX = s.Width / 2
		props.CentroidY = s.Height / 2
		props.Ix = s.Width * math.Pow(s.Height, 3) / 12
		return props
	}

	// Calculate area and centroid using the shoelace formula
	props.Area, props.CentroidX, props.CentroidY = s.calculateAreaAndCentroid()
	props.Ix = s.calculateIx(props.Area, props.CentroidY)

	return props
}

// calculateAreaAndCentroid uses the shoelace formula
func (s *Section) calculateAreaAndCentroid() (area, cx, cy float64) {
	n := len(s.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := s.Vertices[i].X*s.Vertices[j].Y - s.Vertices[j].X*s.Vertices[i].Y
		signedArea += cross
		sumX += (s.Vertices[i].X + s.Vertices[j].X) * cross
		sumY += (s.Vertices[i].Y + s.Vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}

// calculateIx integrates y² over the polygon edges and shifts the result
// to the centroidal axis (parallel axis theorem)
func (s *Section) calculateIx(area, cy float64) float64 {
	n := len(s.Vertices)
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi, vj := s.Vertices[i], s.Vertices[j]
		cross := vi.X*vj.Y - vj.X*vi.Y
		sum += (vi.Y*vi.Y + vi.Y*vj.Y + vj.Y*vj.Y) * cross
	}
	ixOrigin := math.Abs(sum / 12)
	return ixOrigin - area*cy*cy
}

// MomentOfInertia returns Ix in m⁴ for use in the analysis
func (s *Section) MomentOfInertia() float64 {
	return s.CalculateProperties().Ix * 1e-12
}
