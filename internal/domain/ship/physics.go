package ship

import "math"

// OxygenLoss scales the base per-cycle loss by the fraction of players still
// alive: floor(base * living / total). A ship full of corpses barely breathes.
func OxygenLoss(base, living, total int) int {
	if total <= 0 || living <= 0 {
		return 0
	}
	return base * living / total
}

// FuelRequirement returns the fuel needed to survive the given cycle:
// base * (growthPct/100)^(cycle-1), rounded up. Monotonically non-decreasing
// for growthPct >= 100.
func FuelRequirement(cycle, base, growthPct int) int {
	if cycle < 1 {
		cycle = 1
	}
	growth := float64(growthPct) / 100.0
	return int(math.Ceil(float64(base) * math.Pow(growth, float64(cycle-1))))
}

// Arbitrate decides the day's outcome. VICTORY when today's requirement is
// met; FAILURE when tomorrow's requirement can never fit in the tanks,
// regardless of current fuel.
func Arbitrate(fuel, reqToday, reqTomorrow int) Verdict {
	switch {
	case fuel >= reqToday:
		return VerdictVictory
	case reqTomorrow > FuelCap:
		return VerdictFailure
	default:
		return VerdictContinue
	}
}
