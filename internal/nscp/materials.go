package nscp

import "math"

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Normal-weight concrete modulus coefficient (Section 419.2.2.1)
	EcCoefficient = 4700.0 // Ec = 4700√f'c, MPa
)

// Ec calculates the modulus of elasticity of normal-weight concrete
// NSCP 2015 Section 419.2.2.1
func Ec(fc float64) float64 {
	if fc <= 0 {
		return 0
	}
	return EcCoefficient * math.Sqrt(fc)
}
