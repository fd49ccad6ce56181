package carnot

// Unit names a temperature scale accepted by Analyze.
type Unit string

const (
	Kelvin  Unit = "K"
	Celsius Unit = "C"
)

// Input is one presentation-layer request: two reservoir temperatures in the
// given unit, plus an optional total heat input for the energy split.
type Input struct {
	THot  float64
	TCold float64
	Unit  Unit // defaults to Kelvin when empty

	// TotalEnergy is the heat supplied to the engine in Joules. Zero means
	// "no energy split requested"; Result.Work/Waste stay zero.
	TotalEnergy float64
}

// Result is the full derived view of one computation. All fields follow from
// the inputs; nothing here is stateful.
type Result struct {
	THotK  float64 `json:"t_hot_k"`
	TColdK float64 `json:"t_cold_k"`

	Efficiency float64 `json:"efficiency"`
	Percent    float64 `json:"efficiency_pct"`
	Ratio      float64 `json:"ratio"` // tCold / tHot

	TotalEnergy float64 `json:"total_energy_j,omitempty"`
	Work        float64 `json:"work_output_j,omitempty"`
	Waste       float64 `json:"waste_heat_j,omitempty"`
}

// Analyze validates in.THot/in.TCold (converting from Celsius when asked),
// computes the Carnot efficiency and derived quantities, and returns them as
// one value. Errors are exactly those of Efficiency.
func Analyze(in Input) (Result, error) {
	th, tc := in.THot, in.TCold
	if in.Unit == Celsius {
		th = CelsiusToKelvin(th)
		tc = CelsiusToKelvin(tc)
	}

	eff, err := Efficiency(th, tc)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		THotK:      th,
		TColdK:     tc,
		Efficiency: eff,
		Percent:    eff * 100,
		Ratio:      tc / th,
	}
	if in.TotalEnergy > 0 {
		res.TotalEnergy = in.TotalEnergy
		res.Work = WorkOutput(in.TotalEnergy, eff)
		res.Waste = WasteHeat(in.TotalEnergy, eff)
	}
	return res, nil
}
