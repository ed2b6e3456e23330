package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"voidwake/internal/domain/ship"
)

// tuningFile mirrors ship.Tuning with optional fields: only keys present in
// the yaml override the shipped defaults.
type tuningFile struct {
	HoursPerShift *int `yaml:"hours_per_shift"`

	BaseOxygenLoss   *int `yaml:"base_oxygen_loss"`
	FuelReqBase      *int `yaml:"fuel_req_base"`
	FuelReqGrowthPct *int `yaml:"fuel_req_growth_pct"`

	ShuttleBayFuelStart *int `yaml:"shuttle_bay_fuel_start"`
	TorpedoBayFuelStart *int `yaml:"torpedo_bay_fuel_start"`
	ExtractAmount       *int `yaml:"extract_amount"`
	FuelPerCanister     *int `yaml:"fuel_per_canister"`

	TorpedoAccidentChance *float64 `yaml:"torpedo_accident_chance"`
	TorchFindChance       *float64 `yaml:"torch_find_chance"`

	DrainCap       *int `yaml:"drain_cap"`
	DrainBenefit   *int `yaml:"drain_benefit"`
	VentOxygenLoss *int `yaml:"vent_oxygen_loss"`

	IdleCost       *int `yaml:"idle_cost"`
	MoveCost       *int `yaml:"move_cost"`
	GatherCost     *int `yaml:"gather_cost"`
	DepositCost    *int `yaml:"deposit_cost"`
	TowCost        *int `yaml:"tow_cost"`
	VentCost       *int `yaml:"vent_cost"`
	SiphonCost     *int `yaml:"siphon_cost"`
	SearchCost     *int `yaml:"search_cost"`
	IncinerateCost *int `yaml:"incinerate_cost"`

	// Pace is a Go duration string, e.g. "500ms" or "2s".
	Pace *string `yaml:"pace"`
}

// LoadTuning reads path over the defaults. An empty path returns the
// defaults untouched.
func LoadTuning(path string) (ship.Tuning, error) {
	tun := ship.DefaultTuning()
	if path == "" {
		return tun, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return tun, fmt.Errorf("read tuning file: %w", err)
	}
	var f tuningFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return tun, fmt.Errorf("parse tuning file: %w", err)
	}

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&tun.HoursPerShift, f.HoursPerShift)
	setInt(&tun.BaseOxygenLoss, f.BaseOxygenLoss)
	setInt(&tun.FuelReqBase, f.FuelReqBase)
	setInt(&tun.FuelReqGrowthPct, f.FuelReqGrowthPct)
	setInt(&tun.ShuttleBayFuelStart, f.ShuttleBayFuelStart)
	setInt(&tun.TorpedoBayFuelStart, f.TorpedoBayFuelStart)
	setInt(&tun.ExtractAmount, f.ExtractAmount)
	setInt(&tun.FuelPerCanister, f.FuelPerCanister)
	setInt(&tun.DrainCap, f.DrainCap)
	setInt(&tun.DrainBenefit, f.DrainBenefit)
	setInt(&tun.VentOxygenLoss, f.VentOxygenLoss)
	setInt(&tun.IdleCost, f.IdleCost)
	setInt(&tun.MoveCost, f.MoveCost)
	setInt(&tun.GatherCost, f.GatherCost)
	setInt(&tun.DepositCost, f.DepositCost)
	setInt(&tun.TowCost, f.TowCost)
	setInt(&tun.VentCost, f.VentCost)
	setInt(&tun.SiphonCost, f.SiphonCost)
	setInt(&tun.SearchCost, f.SearchCost)
	setInt(&tun.IncinerateCost, f.IncinerateCost)
	if f.TorpedoAccidentChance != nil {
		tun.TorpedoAccidentChance = *f.TorpedoAccidentChance
	}
	if f.TorchFindChance != nil {
		tun.TorchFindChance = *f.TorchFindChance
	}
	if f.Pace != nil {
		pace, err := time.ParseDuration(*f.Pace)
		if err != nil {
			return ship.DefaultTuning(), fmt.Errorf("parse pace: %w", err)
		}
		tun.Pace = pace
	}

	if err := validate(tun); err != nil {
		return ship.DefaultTuning(), err
	}
	return tun, nil
}

func validate(tun ship.Tuning) error {
	if tun.HoursPerShift <= 0 {
		return fmt.Errorf("hours_per_shift must be positive, got %d", tun.HoursPerShift)
	}
	if tun.FuelReqGrowthPct < 100 {
		return fmt.Errorf("fuel_req_growth_pct below 100 shrinks the quota, got %d", tun.FuelReqGrowthPct)
	}
	if tun.TorpedoAccidentChance < 0 || tun.TorpedoAccidentChance > 1 {
		return fmt.Errorf("torpedo_accident_chance must be in [0,1], got %v", tun.TorpedoAccidentChance)
	}
	if tun.TorchFindChance < 0 || tun.TorchFindChance > 1 {
		return fmt.Errorf("torch_find_chance must be in [0,1], got %v", tun.TorchFindChance)
	}
	return nil
}
