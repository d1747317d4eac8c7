package stiffness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElement(t *testing.T) {
	el, err := NewElement(200e6, 0.13824, 3)
	require.NoError(t, err)

	c := 200e6 * 0.13824 / 27 // EI/L³ = 1.024e6
	k := el.Stiffness()

	assert.InEpsilon(t, 12*c, k[0][0], 1e-12)
	assert.InEpsilon(t, 18*c, k[0][1], 1e-12)
	assert.InEpsilon(t, -12*c, k[0][2], 1e-12)
	assert.InEpsilon(t, 36*c, k[1][1], 1e-12)
	assert.InEpsilon(t, 18*c, k[1][3], 1e-12)
	assert.InEpsilon(t, -18*c, k[2][3], 1e-12)

	for r := 0; r < 4; r++ {
		for col := 0; col < 4; col++ {
			assert.Equal(t, k[r][col], k[col][r], "k[%d][%d] not symmetric", r, col)
		}
	}
}

func TestNewElementStiffnessIsCopy(t *testing.T) {
	el, err := NewElement(1, 1, 2)
	require.NoError(t, err)

	k := el.Stiffness()
	k[0][0] = 999
	assert.NotEqual(t, 999.0, el.Stiffness()[0][0])
}

func TestNewElementRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		e, i, l float64
		kind    error
	}{
		{"zero length", 1, 1, 0, ErrInvalidGeometry},
		{"negative length", 1, 1, -2, ErrInvalidGeometry},
		{"zero modulus", 0, 1, 2, ErrNumericDomain},
		{"negative inertia", 1, -1, 2, ErrNumericDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewElement(tt.e, tt.i, tt.l)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestEndForcesOfRestrainedElement(t *testing.T) {
	el, err := NewElement(30e6, 0.002, 5)
	require.NoError(t, err)

	qf := SpanFixedEndForces([]Load{DistributedLoad{Q: 12, A: 0, Length: 5}}, 5)
	f := el.EndForces([4]float64{}, qf)
	assert.Equal(t, qf, f)
}

func TestDeflectionMatchesNodalValues(t *testing.T) {
	el, err := NewElement(1, 1, 4)
	require.NoError(t, err)

	u := [4]float64{0.01, -0.002, -0.03, 0.004}
	assert.InDelta(t, u[0], el.Deflection(u, 0), 1e-15)
	assert.InDelta(t, u[2], el.Deflection(u, 4), 1e-15)

	// rigid rotation stays linear
	rigid := [4]float64{0, 0.5, 2, 0.5}
	assert.InDelta(t, 0.75, el.Deflection(rigid, 1.5), 1e-12)
}
