package cycle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermolab/carnot/pkg/carnot"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"defaults are valid", func(p *Params) {}, nil},
		{"inverted reservoirs", func(p *Params) { p.TCold = 900 }, carnot.ErrInvalidOrdering},
		{"negative cold", func(p *Params) { p.TCold = -5 }, carnot.ErrInvalidTemperature},
		{"zero hot", func(p *Params) { p.THot = 0 }, carnot.ErrInvalidTemperature},
		{"absolute zero sink", func(p *Params) { p.TCold = 0 }, ErrBadGasParams},
		{"zero moles", func(p *Params) { p.Moles = 0 }, ErrBadGasParams},
		{"compression ratio", func(p *Params) { p.ExpansionRatio = 0.5 }, ErrBadGasParams},
		{"one point per stroke", func(p *Params) { p.PointsPerStroke = 1 }, ErrBadGasParams},
		{"gamma of isothermal gas", func(p *Params) { p.Gamma = 1 }, ErrBadGamma},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams(873, 298)
			tt.mutate(&p)
			err := p.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerate_Closure(t *testing.T) {
	c, err := Generate(DefaultParams(873, 298))
	require.NoError(t, err)
	require.Len(t, c.Strokes, 4)

	// strokes join end-to-start
	for i := 0; i < 4; i++ {
		cur := c.Strokes[i].Points
		next := c.Strokes[(i+1)%4].Points
		last, first := cur[len(cur)-1], next[0]
		assert.InEpsilon(t, last.V, first.V, 1e-9, "V at joint %d", i)
		assert.InEpsilon(t, last.P, first.P, 1e-9, "P at joint %d", i)
		assert.InEpsilon(t, last.T, first.T, 1e-9, "T at joint %d", i)
	}
}

func TestGenerate_StrokePhysics(t *testing.T) {
	p := DefaultParams(873, 298)
	c, err := Generate(p)
	require.NoError(t, err)

	hot, adExp, cold, adCmp := c.Strokes[0], c.Strokes[1], c.Strokes[2], c.Strokes[3]

	// isotherms hold their reservoir temperature and obey PV = nRT
	for i, pt := range hot.Points {
		assert.InDelta(t, 873.0, pt.T, 1e-9, "hot isotherm i=%d", i)
		assert.InEpsilon(t, p.Moles*GasConstant*873, pt.P*pt.V, 1e-9, "PV on hot isotherm i=%d", i)
	}
	for i, pt := range cold.Points {
		assert.InDelta(t, 298.0, pt.T, 1e-9, "cold isotherm i=%d", i)
	}

	// adiabats run between the reservoir temperatures, monotonically
	n := len(adExp.Points)
	assert.InDelta(t, 873.0, adExp.Points[0].T, 1e-9)
	assert.InDelta(t, 298.0, adExp.Points[n-1].T, 1e-6)
	assert.InDelta(t, 298.0, adCmp.Points[0].T, 1e-6)
	assert.InDelta(t, 873.0, adCmp.Points[n-1].T, 1e-6)
	for i := 1; i < n; i++ {
		assert.Less(t, adExp.Points[i].T, adExp.Points[i-1].T, "expansion cools (i=%d)", i)
		assert.Greater(t, adCmp.Points[i].T, adCmp.Points[i-1].T, "compression heats (i=%d)", i)
	}

	// P·V^γ constant along each adiabat
	for _, s := range []Stroke{adExp, adCmp} {
		k0 := s.Points[0].P * math.Pow(s.Points[0].V, p.Gamma)
		for i, pt := range s.Points {
			assert.InEpsilon(t, k0, pt.P*math.Pow(pt.V, p.Gamma), 1e-9, "%s i=%d", s.Name, i)
		}
	}
}

func TestCycle_EfficiencyMatchesCore(t *testing.T) {
	for _, temps := range [][2]float64{{873, 298}, {400, 300}, {2000, 273.15}} {
		c, err := Generate(DefaultParams(temps[0], temps[1]))
		require.NoError(t, err)

		want, err := carnot.Efficiency(temps[0], temps[1])
		require.NoError(t, err)

		got := c.NetWork() / c.HeatIn()
		assert.InDelta(t, want, got, 1e-12, "Th=%v Tc=%v", temps[0], temps[1])
		assert.InDelta(t, c.HeatIn(), c.NetWork()+c.HeatOut(), 1e-9)
		t.Logf("Th=%.2f Tc=%.2f: W=%.2fJ Qin=%.2fJ eta=%.4f",
			temps[0], temps[1], c.NetWork(), c.HeatIn(), got)
	}
}

func TestGenerate_PointCount(t *testing.T) {
	p := DefaultParams(600, 300)
	p.PointsPerStroke = 7
	c, err := Generate(p)
	require.NoError(t, err)
	for _, s := range c.Strokes {
		assert.Len(t, s.Points, 7, s.Name)
	}
}
