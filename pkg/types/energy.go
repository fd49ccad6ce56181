package types

import "fmt"

// Energy is a float64 wrapper representing an amount of energy in Joules.
type Energy float64

// Humanized returns a human-readable string with automatic unit (J, kJ, MJ, GJ, TJ).
func (e Energy) Humanized() string {
	v := float64(e)
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%s%.2f TJ", neg, v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%s%.2f GJ", neg, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s%.2f MJ", neg, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s%.2f kJ", neg, v/1e3)
	default:
		return fmt.Sprintf("%s%.2f J", neg, v)
	}
}

// KJ returns the energy in kilojoules.
func (e Energy) KJ() float64 { return float64(e) / 1e3 }

// MJ returns the energy in megajoules.
func (e Energy) MJ() float64 { return float64(e) / 1e6 }

// KWh returns the energy in kilowatt-hours (1 kWh = 3.6 MJ).
func (e Energy) KWh() float64 { return float64(e) / 3.6e6 }
