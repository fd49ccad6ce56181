// Package cycle generates the idealized pressure–volume geometry of a Carnot
// cycle over an ideal gas: isothermal expansion at the hot temperature,
// adiabatic expansion down to the cold temperature, isothermal compression,
// and adiabatic compression back to the initial state.
package cycle

import (
	"errors"
	"fmt"
	"math"

	"github.com/thermolab/carnot/pkg/carnot"
)

// GasConstant is the molar gas constant R in J/(mol·K).
const GasConstant = 8.314462618

var (
	// ErrBadGasParams indicates non-physical gas parameters (moles, volume,
	// expansion ratio, point count) rather than bad temperatures.
	ErrBadGasParams = errors.New("cycle: gas parameters must be positive")

	// ErrBadGamma indicates a heat-capacity ratio at or below 1, which would
	// make the adiabats degenerate.
	ErrBadGamma = errors.New("cycle: heat capacity ratio must be > 1")
)

// Params describes one idealized engine cycle. Temperatures are Kelvin and
// validated by the same rules as carnot.Efficiency; the gas parameters all
// have working defaults (see DefaultParams).
type Params struct {
	THot  float64
	TCold float64

	Moles float64 // amount of working gas, mol
	Gamma float64 // heat capacity ratio cp/cv

	V1             float64 // volume at the start of the hot isotherm, m³
	ExpansionRatio float64 // V2/V1 along the hot isotherm, > 1

	PointsPerStroke int
}

// DefaultParams returns Params for one mole of diatomic gas with a modest
// isothermal expansion, enough resolution for a smooth chart.
func DefaultParams(tHot, tCold float64) Params {
	return Params{
		THot:            tHot,
		TCold:           tCold,
		Moles:           1,
		Gamma:           1.4,
		V1:              1e-3,
		ExpansionRatio:  2,
		PointsPerStroke: 50,
	}
}

// Validate checks temperatures via the core rules and the gas parameters
// locally.
func (p Params) Validate() error {
	if _, err := carnot.Efficiency(p.THot, p.TCold); err != nil {
		return err
	}
	// TCold == 0 passes efficiency validation but breaks the adiabat ratio
	if p.TCold == 0 {
		return fmt.Errorf("%w: adiabats need a cold temperature above 0 K", ErrBadGasParams)
	}
	if p.Moles <= 0 || p.V1 <= 0 || p.ExpansionRatio <= 1 || p.PointsPerStroke < 2 {
		return ErrBadGasParams
	}
	if p.Gamma <= 1 {
		return ErrBadGamma
	}
	return nil
}

// Point is one sampled state on a stroke.
type Point struct {
	V float64 `json:"v_m3"`
	P float64 `json:"p_pa"`
	T float64 `json:"t_k"`
}

// Stroke is one of the four legs of the cycle.
type Stroke struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Cycle is the full sampled loop plus the parameters that produced it.
type Cycle struct {
	Params  Params   `json:"params"`
	Strokes []Stroke `json:"strokes"`
}

// Generate computes the four strokes. Corner volumes follow from the ideal
// gas relations: along an adiabat T·V^(γ-1) is constant, so
//
//	V3 = V2·(Th/Tc)^(1/(γ-1))   and   V4 = V1·(Th/Tc)^(1/(γ-1))
//
// Isotherm pressures come from P = nRT/V, adiabat pressures from
// P·V^γ = const anchored at the stroke's starting corner.
func Generate(p Params) (Cycle, error) {
	if err := p.Validate(); err != nil {
		return Cycle{}, err
	}

	v1 := p.V1
	v2 := p.V1 * p.ExpansionRatio
	adiabatGrowth := math.Pow(p.THot/p.TCold, 1/(p.Gamma-1))
	v3 := v2 * adiabatGrowth
	v4 := v1 * adiabatGrowth

	c := Cycle{
		Params: p,
		Strokes: []Stroke{
			p.isotherm("isothermal expansion", p.THot, v1, v2),
			p.adiabat("adiabatic expansion", p.THot, v2, v3),
			p.isotherm("isothermal compression", p.TCold, v3, v4),
			p.adiabat("adiabatic compression", p.TCold, v4, v1),
		},
	}
	return c, nil
}

// isotherm samples P = nRT/V from vFrom to vTo at constant T.
func (p Params) isotherm(name string, t, vFrom, vTo float64) Stroke {
	pts := make([]Point, p.PointsPerStroke)
	for i := range pts {
		v := interp(vFrom, vTo, i, p.PointsPerStroke)
		pts[i] = Point{V: v, P: p.Moles * GasConstant * t / v, T: t}
	}
	return Stroke{Name: name, Points: pts}
}

// adiabat samples P·V^γ = const from vFrom to vTo, anchored at (vFrom, tFrom).
func (p Params) adiabat(name string, tFrom, vFrom, vTo float64) Stroke {
	pFrom := p.Moles * GasConstant * tFrom / vFrom
	k := pFrom * math.Pow(vFrom, p.Gamma)

	pts := make([]Point, p.PointsPerStroke)
	for i := range pts {
		v := interp(vFrom, vTo, i, p.PointsPerStroke)
		pr := k / math.Pow(v, p.Gamma)
		pts[i] = Point{V: v, P: pr, T: pr * v / (p.Moles * GasConstant)}
	}
	return Stroke{Name: name, Points: pts}
}

func interp(from, to float64, i, n int) float64 {
	return from + (to-from)*float64(i)/float64(n-1)
}

// HeatIn is the heat absorbed from the hot reservoir along the hot isotherm:
// nR·Th·ln(V2/V1).
func (c Cycle) HeatIn() float64 {
	return c.Params.Moles * GasConstant * c.Params.THot * math.Log(c.Params.ExpansionRatio)
}

// NetWork is the work produced per cycle: nR·(Th-Tc)·ln(V2/V1). The ratio
// NetWork/HeatIn reproduces the Carnot efficiency 1 - Tc/Th.
func (c Cycle) NetWork() float64 {
	return c.Params.Moles * GasConstant * (c.Params.THot - c.Params.TCold) * math.Log(c.Params.ExpansionRatio)
}

// HeatOut is the heat rejected to the cold reservoir: HeatIn - NetWork.
func (c Cycle) HeatOut() float64 { return c.HeatIn() - c.NetWork() }
