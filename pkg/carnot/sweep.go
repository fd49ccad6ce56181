package carnot

// SweepPoint is one sample of the efficiency curve.
type SweepPoint struct {
	TColdK     float64 `json:"t_cold_k"`
	Efficiency float64 `json:"efficiency"`
}

// Sweep samples the efficiency curve for a fixed hot reservoir across a
// range of cold temperatures, for chart rendering. The requested range is
// clamped to the valid domain [0, tHot): points at or above tHot would not
// describe a working engine and are simply not produced.
//
// steps is the number of samples and is raised to 2 when smaller. The only
// error is ErrInvalidTemperature for tHot <= 0.
func Sweep(tHot, coldMin, coldMax float64, steps int) ([]SweepPoint, error) {
	if _, err := Efficiency(tHot, 0); err != nil {
		return nil, err
	}
	if steps < 2 {
		steps = 2
	}
	// stay strictly below tHot so every sample validates
	ceil := tHot * (1 - 1e-9)
	coldMin = clampRange(coldMin, 0, ceil)
	coldMax = clampRange(coldMax, 0, ceil)
	if coldMax < coldMin {
		coldMin, coldMax = coldMax, coldMin
	}

	pts := make([]SweepPoint, 0, steps)
	span := coldMax - coldMin
	for i := 0; i < steps; i++ {
		tc := coldMin + span*float64(i)/float64(steps-1)
		eff, _ := Efficiency(tHot, tc)
		pts = append(pts, SweepPoint{TColdK: tc, Efficiency: eff})
	}
	return pts, nil
}

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
