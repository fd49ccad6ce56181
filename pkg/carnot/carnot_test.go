package carnot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEfficiency_KnownScenarios(t *testing.T) {
	cases := []struct {
		name  string
		tHot  float64
		tCold float64
		want  float64
	}{
		{"power plant", 873, 298, 1 - 298.0/873.0},          // ≈ 0.6586
		{"power plant celsius converted", 873.15, 298.15, 1 - 298.15/873.15}, // ≈ 0.6585
		{"room temp engine", 400, 300, 0.25},
		{"absolute zero sink", 300, 0, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Efficiency(tc.tHot, tc.tCold)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
			t.Logf("Th=%.2fK Tc=%.2fK -> eta=%.4f (%.2f%%) ratio=%.4f",
				tc.tHot, tc.tCold, got, got*100, tc.tCold/tc.tHot)
		})
	}
}

func TestEfficiency_ConcreteNumbers(t *testing.T) {
	eff, err := Efficiency(873, 298)
	require.NoError(t, err)
	assert.InDelta(t, 0.6586, eff, 5e-5)
	assert.InDelta(t, 0.3414, 298.0/873.0, 5e-5)

	// 600°C / 25°C via conversion
	eff2, err := Efficiency(CelsiusToKelvin(600), CelsiusToKelvin(25))
	require.NoError(t, err)
	assert.InDelta(t, 0.6585, eff2, 5e-5)
}

func TestEfficiency_RangeProperty(t *testing.T) {
	// for all Th > 0, Tc in [0, Th): 0 <= eta < 1
	hots := []float64{1e-6, 1, 273.15, 300, 873, 2000}
	for _, th := range hots {
		for i := 0; i < 10; i++ {
			tc := th * float64(i) / 10 // 0 .. 0.9*Th
			eff, err := Efficiency(th, tc)
			require.NoError(t, err, "Th=%v Tc=%v", th, tc)
			assert.GreaterOrEqual(t, eff, 0.0, "Th=%v Tc=%v", th, tc)
			assert.LessOrEqual(t, eff, 1.0, "Th=%v Tc=%v", th, tc)
			if tc > 0 {
				assert.Less(t, eff, 1.0, "Th=%v Tc=%v", th, tc)
			}
		}
	}
}

func TestEfficiency_InvalidOrdering(t *testing.T) {
	cases := [][2]float64{
		{300, 300}, // equal
		{300, 400}, // inverted
		{298, 873},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("Th=%v_Tc=%v", c[0], c[1]), func(t *testing.T) {
			_, err := Efficiency(c[0], c[1])
			require.ErrorIs(t, err, ErrInvalidOrdering)
		})
	}
}

func TestEfficiency_InvalidTemperature(t *testing.T) {
	cases := [][2]float64{
		{0, 10},    // non-positive hot
		{-100, 10}, // negative hot
		{300, -5},  // negative cold
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("Th=%v_Tc=%v", c[0], c[1]), func(t *testing.T) {
			_, err := Efficiency(c[0], c[1])
			require.ErrorIs(t, err, ErrInvalidTemperature)
		})
	}
}

func TestEfficiency_ValidationOrder(t *testing.T) {
	// Th=0, Tc=10 trips both rules; the range check must win.
	_, err := Efficiency(0, 10)
	require.ErrorIs(t, err, ErrInvalidTemperature)
	assert.NotErrorIs(t, err, ErrInvalidOrdering)
}

func TestConversions_RoundTrip(t *testing.T) {
	for _, x := range []float64{-273.15, -40, 0, 25, 100, 600, 1e6} {
		assert.InDelta(t, x, KelvinToCelsius(CelsiusToKelvin(x)), 1e-9, "x=%v", x)
	}
	assert.InDelta(t, 298.15, CelsiusToKelvin(25), 1e-12)
	assert.InDelta(t, 25.0, KelvinToCelsius(298.15), 1e-12)
	assert.InDelta(t, 0.0, CelsiusToKelvin(AbsoluteZeroC), 1e-12)
}

func TestEnergySplit_Conservation(t *testing.T) {
	cases := []struct {
		e, eta float64
	}{
		{1000, 0.5},
		{1000, 0},
		{1000, 1},
		{0, 0.3},
		{1e9, 0.6586},
	}
	for _, c := range cases {
		work := WorkOutput(c.e, c.eta)
		waste := WasteHeat(c.e, c.eta)
		assert.InDelta(t, c.e, work+waste, 1e-6*c.e+1e-12, "E=%v eta=%v", c.e, c.eta)
	}

	// the worked example from the docs: 1000 J at 50% splits evenly
	assert.Equal(t, 500.0, WorkOutput(1000, 0.5))
	assert.Equal(t, 500.0, WasteHeat(1000, 0.5))
}

func TestAnalyze_KelvinAndCelsius(t *testing.T) {
	resK, err := Analyze(Input{THot: 873, TCold: 298, Unit: Kelvin, TotalEnergy: 1000})
	require.NoError(t, err)
	assert.InDelta(t, 0.6586, resK.Efficiency, 5e-5)
	assert.InDelta(t, 65.86, resK.Percent, 5e-3)
	assert.InDelta(t, 0.3414, resK.Ratio, 5e-5)
	assert.InDelta(t, resK.TotalEnergy, resK.Work+resK.Waste, 1e-9)
	t.Logf("K input : eta=%.4f work=%.2fJ waste=%.2fJ", resK.Efficiency, resK.Work, resK.Waste)

	resC, err := Analyze(Input{THot: 600, TCold: 25, Unit: Celsius})
	require.NoError(t, err)
	assert.InDelta(t, 873.15, resC.THotK, 1e-9)
	assert.InDelta(t, 298.15, resC.TColdK, 1e-9)
	assert.InDelta(t, 0.6585, resC.Efficiency, 5e-5)
	assert.Zero(t, resC.Work)
	assert.Zero(t, resC.Waste)
	t.Logf("C input : eta=%.4f", resC.Efficiency)
}

func TestAnalyze_ErrorsPropagate(t *testing.T) {
	_, err := Analyze(Input{THot: 300, TCold: 400})
	require.ErrorIs(t, err, ErrInvalidOrdering)

	_, err = Analyze(Input{THot: -10, TCold: 5, Unit: Kelvin})
	require.ErrorIs(t, err, ErrInvalidTemperature)

	// -300°C converts below 0 K and must be rejected after conversion
	_, err = Analyze(Input{THot: 600, TCold: -300, Unit: Celsius})
	require.ErrorIs(t, err, ErrInvalidTemperature)
}

func TestAnalyze_Idempotent(t *testing.T) {
	in := Input{THot: 873, TCold: 298, TotalEnergy: 1234}
	a, err := Analyze(in)
	require.NoError(t, err)
	b, err := Analyze(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSweep_CurveShape(t *testing.T) {
	pts, err := Sweep(873, 0, 873, 25)
	require.NoError(t, err)
	require.Len(t, pts, 25)

	prev := 2.0
	for i, p := range pts {
		assert.GreaterOrEqual(t, p.Efficiency, 0.0, "i=%d", i)
		assert.LessOrEqual(t, p.Efficiency, 1.0, "i=%d", i)
		assert.Less(t, p.Efficiency, prev, "efficiency must fall as Tc rises (i=%d)", i)
		prev = p.Efficiency
	}
	assert.InDelta(t, 1.0, pts[0].Efficiency, 1e-12, "Tc=0 endpoint")
	t.Logf("sweep: eta(Tc=0)=%.4f .. eta(Tc≈Th)=%.6f", pts[0].Efficiency, pts[len(pts)-1].Efficiency)
}

func TestSweep_ClampsAndValidates(t *testing.T) {
	// negative lower bound and upper bound above Th are clamped, not fatal
	pts, err := Sweep(300, -50, 500, 10)
	require.NoError(t, err)
	require.Len(t, pts, 10)
	assert.Equal(t, 0.0, pts[0].TColdK)
	assert.Less(t, pts[len(pts)-1].TColdK, 300.0)

	_, err = Sweep(0, 0, 100, 10)
	require.ErrorIs(t, err, ErrInvalidTemperature)
}

func ExampleEfficiency() {
	eff, _ := Efficiency(873, 298)
	fmt.Printf("eta=%.4f work=%.1fJ waste=%.1fJ\n",
		eff, WorkOutput(1000, eff), WasteHeat(1000, eff))
	// Output: eta=0.6586 work=658.6J waste=341.4J
}
