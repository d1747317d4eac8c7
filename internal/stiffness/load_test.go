package stiffness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquivalentNodalLoadClosedForms(t *testing.T) {
	const L = 6.0

	t.Run("full uniform load", func(t *testing.T) {
		q := 10.0
		f := EquivalentNodalLoad(DistributedLoad{Q: q, A: 0, Length: L}, L)
		assert.InDelta(t, q*L/2, f[0], 1e-9)
		assert.InDelta(t, q*L*L/12, f[1], 1e-9)
		assert.InDelta(t, q*L/2, f[2], 1e-9)
		assert.InDelta(t, -q*L*L/12, f[3], 1e-9)
	})

	t.Run("central point load", func(t *testing.T) {
		p := 20.0
		f := EquivalentNodalLoad(PointLoad{P: p, A: L / 2}, L)
		assert.InDelta(t, p/2, f[0], 1e-9)
		assert.InDelta(t, p*L/8, f[1], 1e-9)
		assert.InDelta(t, p/2, f[2], 1e-9)
		assert.InDelta(t, -p*L/8, f[3], 1e-9)
	})

	t.Run("central moment", func(t *testing.T) {
		m := 8.0
		f := EquivalentNodalLoad(MomentConcentrated{M: m, A: L / 2}, L)
		assert.InDelta(t, -1.5*m/L, f[0], 1e-9)
		assert.InDelta(t, -m/4, f[1], 1e-9)
		assert.InDelta(t, 1.5*m/L, f[2], 1e-9)
		assert.InDelta(t, -m/4, f[3], 1e-9)
	})
}

func TestEquivalentNodalLoadStatics(t *testing.T) {
	const L = 7.0
	tests := []struct {
		name   string
		load   Load
		force  float64 // resultant of the load
		moment float64 // moment of the load about the left end
	}{
		{"point", PointLoad{P: 15, A: 2.5}, 15, 15 * 2.5},
		{"partial uniform", DistributedLoad{Q: 4, A: 1.5, Length: 3}, 12, 12 * 3},
		{"uniform to end", DistributedLoad{Q: -3, A: 2, Length: 5}, -15, -15 * 4.5},
		{"moment", MomentConcentrated{M: 9, A: 4}, 0, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := EquivalentNodalLoad(tt.load, L)
			assert.InDelta(t, tt.force, f[0]+f[2], 1e-9)
			assert.InDelta(t, tt.moment, f[1]+f[3]+f[2]*L, 1e-9)
		})
	}
}

// A partial uniform load must equal the integral of point loads over its length.
func TestDistributedLoadMatchesIntegratedPointLoads(t *testing.T) {
	const (
		L = 8.0
		q = 5.0
		a = 1.25
		l = 4.5
		n = 4000
	)
	want := EquivalentNodalLoad(DistributedLoad{Q: q, A: a, Length: l}, L)

	var got [4]float64
	dx := l / n
	for i := 0; i < n; i++ {
		x := a + (float64(i)+0.5)*dx
		f := EquivalentNodalLoad(PointLoad{P: q * dx, A: x}, L)
		for j := range got {
			got[j] += f[j]
		}
	}
	for j := range got {
		assert.InDelta(t, want[j], got[j], 1e-5, "component %d", j)
	}
}

func TestShearAt(t *testing.T) {
	const L = 10.0
	p := PointLoad{P: 6, A: 4}
	q := DistributedLoad{Q: 2, A: 3, Length: 5}
	m := MomentConcentrated{M: 12, A: 5}

	tests := []struct {
		name string
		load Load
		x    float64
		want float64
	}{
		{"point before", p, 2, 0},
		{"point at", p, 4, 0},
		{"point after", p, 4.5, -6},
		{"uniform before", q, 1, 0},
		{"uniform inside", q, 5, -4},
		{"uniform end", q, 8, -10},
		{"uniform after", q, 9.5, -10},
		{"moment", m, 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ShearAt(tt.load, tt.x, L), 1e-12)
		})
	}
}

func TestMomentAt(t *testing.T) {
	const L = 10.0
	p := PointLoad{P: 6, A: 4}
	q := DistributedLoad{Q: 2, A: 3, Length: 5}
	m := MomentConcentrated{M: 12, A: 5}

	// simple-beam reactions of the partial uniform load
	v1 := 2 * 5 / L * (L - 3 - 2.5)
	v2 := 10 - v1

	tests := []struct {
		name string
		load Load
		x    float64
		want float64
	}{
		{"point left", p, 2, 0.6 * 6 * 2},
		{"point under", p, 4, 4 * 6 * 0.6},
		{"point right", p, 8, 4 * 6 * 0.2},
		{"uniform left", q, 2, v1 * 2},
		{"uniform inside", q, 6, v1*6 - 2*9/2.0},
		{"uniform right", q, 9, v2 * 1},
		{"moment left", m, 2, 12.0 / L * 2},
		{"moment at", m, 5, 0},
		{"moment right", m, 7.5, 12 * (0.75 - 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MomentAt(tt.load, tt.x, L), 1e-12)
		})
	}

	assert.InDelta(t, 0, MomentAt(p, 0, L), 1e-12)
	assert.InDelta(t, 0, MomentAt(p, L, L), 1e-12)
	assert.InDelta(t, 0, MomentAt(q, L, L), 1e-12)
}

func TestSpanFixedEndForcesSuperpose(t *testing.T) {
	const L = 5.0
	loads := []Load{
		PointLoad{P: 10, A: 1},
		DistributedLoad{Q: 3, A: 0, Length: 5},
		MomentConcentrated{M: -4, A: 3},
	}
	got := SpanFixedEndForces(loads, L)

	var want [4]float64
	for _, ld := range loads {
		f := EquivalentNodalLoad(ld, L)
		for i := range want {
			want[i] += f[i]
		}
	}
	assert.Equal(t, want, got)
	assert.Equal(t, [4]float64{}, SpanFixedEndForces(nil, L))
}

func TestValidateLoad(t *testing.T) {
	const L = 4.0
	tests := []struct {
		name    string
		load    Load
		wantErr bool
	}{
		{"point inside", PointLoad{P: 1, A: 2}, false},
		{"point at end", PointLoad{P: 1, A: 4}, false},
		{"point beyond", PointLoad{P: 1, A: 4.5}, true},
		{"point negative", PointLoad{P: 1, A: -1}, true},
		{"uniform full", DistributedLoad{Q: 1, A: 0, Length: 4}, false},
		{"uniform overrun", DistributedLoad{Q: 1, A: 1, Length: 3.5}, true},
		{"uniform negative length", DistributedLoad{Q: 1, A: 1, Length: -1}, true},
		{"moment beyond", MomentConcentrated{M: 1, A: 5}, true},
		{"nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLoad(tt.load, L)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNumericDomain), "got %v", err)
		})
	}
}
