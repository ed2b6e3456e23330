package ship

import "time"

const (
	OxygenMax  = 100
	FuelCap    = 100
	BatteryMax = 100

	NameMaxLen = 32
)

// Tuning carries every balance knob the simulation reads. Defaults match the
// shipped game; an optional yaml file may override them at startup.
type Tuning struct {
	HoursPerShift int

	BaseOxygenLoss   int
	FuelReqBase      int
	FuelReqGrowthPct int

	ShuttleBayFuelStart int
	TorpedoBayFuelStart int
	ExtractAmount       int
	FuelPerCanister     int

	TorpedoAccidentChance float64
	TorchFindChance       float64

	DrainCap     int
	DrainBenefit int

	// VentOxygenLoss is the single authoritative vent amount: the executable
	// rule and the tool documentation shown to deciders both read it.
	VentOxygenLoss int

	IdleCost       int
	MoveCost       int
	GatherCost     int
	DepositCost    int
	TowCost        int
	VentCost       int
	SiphonCost     int
	SearchCost     int
	IncinerateCost int

	Pace time.Duration
}

func DefaultTuning() Tuning {
	return Tuning{
		HoursPerShift: 8,

		BaseOxygenLoss:   20,
		FuelReqBase:      20,
		FuelReqGrowthPct: 150,

		ShuttleBayFuelStart: 60,
		TorpedoBayFuelStart: 40,
		ExtractAmount:       10,
		FuelPerCanister:     10,

		TorpedoAccidentChance: 0.25,
		TorchFindChance:       0.4,

		DrainCap:     30,
		DrainBenefit: 15,

		VentOxygenLoss: 10,

		IdleCost:       2,
		MoveCost:       5,
		GatherCost:     10,
		DepositCost:    5,
		TowCost:        15,
		VentCost:       20,
		SiphonCost:     10,
		SearchCost:     10,
		IncinerateCost: 25,

		Pace: 2 * time.Second,
	}
}
