package nscp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEc(t *testing.T) {
	assert.InDelta(t, 4700*5.0, Ec(25), 1e-9)
	assert.InDelta(t, 24870.06, Ec(28), 0.01)
	assert.Zero(t, Ec(0))
	assert.Zero(t, Ec(-4))
}

func TestFactor(t *testing.T) {
	combo, err := Find("2", LoadCombinations)
	require.NoError(t, err)

	tests := []struct {
		name string
		want float64
	}{
		{"D", 1.2},
		{"", 1.2},
		{"dead", 1.2},
		{"L", 1.6},
		{"live", 1.6},
		{"lr", 0.5},
		{"R", 0.5},
		{"W", 0},
		{"seismic", 0},
		{"snow", 1.2}, // unrecognised labels are dead load
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, combo.Factor(tt.name))
		})
	}
}

func TestNormalizeCase(t *testing.T) {
	c, err := NormalizeCase(" lR ")
	require.NoError(t, err)
	assert.Equal(t, CaseRoof, c)

	c, err = NormalizeCase("")
	require.NoError(t, err)
	assert.Equal(t, CaseDead, c)

	_, err = NormalizeCase("snow")
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	combo, err := Find("7", LoadCombinations)
	require.NoError(t, err)
	assert.Equal(t, "0.9D + 1.0E", combo.Description)

	_, err = Find("7", SimplifiedCombinations)
	assert.Error(t, err)

	assert.Len(t, Combinations(true), 2)
	assert.Len(t, Combinations(false), 7)
}

func TestCalculateGoverningMoment(t *testing.T) {
	var m LoadMoments
	m.Add("D", 40)
	m.Add("L", 25)
	m.Add("W", 10)

	mu, combo := CalculateGoverningMoment(m, LoadCombinations)
	assert.InDelta(t, 1.2*40+1.6*25, mu, 1e-9)
	assert.Equal(t, "2", combo.ID)

	mu, combo = CalculateGoverningMoment(LoadMoments{Dead: 10}, SimplifiedCombinations)
	assert.InDelta(t, 14, mu, 1e-9)
	assert.Equal(t, "1", combo.ID)
}
