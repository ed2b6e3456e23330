package tool

import (
	"fmt"

	"voidwake/internal/domain/ship"
)

type gatherHandler struct{}

func (gatherHandler) execute(t *turn) Outcome {
	var pool *int
	switch t.actor.Room {
	case ship.RoomShuttleBay:
		pool = &t.ship.ShuttleBayFuel
	case ship.RoomTorpedoBay:
		pool = &t.ship.TorpedoBayFuel
	default:
		return t.failed(fmt.Sprintf("%s probes the walls but there is no fuel line here", t.actor.Name))
	}
	if *pool < t.tun.ExtractAmount {
		return t.failed(fmt.Sprintf("%s taps a dry reserve: the %s pool is spent", t.actor.Name, roomLabel(t.actor.Room)))
	}

	// Torpedo fuel is volatile. A bad extraction knocks out every drone in
	// the bay and grants nothing.
	if t.actor.Room == ship.RoomTorpedoBay && t.rng.Float64() < t.tun.TorpedoAccidentChance {
		t.blast()
		return Outcome{
			Success:    false,
			Message:    fmt.Sprintf("a fuel line ruptures in the torpedo bay — the blast knocks out every drone inside, %s included", t.actor.Name),
			Cost:       0,
			Visibility: VisibilityGlobal,
		}
	}

	*pool -= t.tun.ExtractAmount
	t.actor.AddItem(ship.ItemFuelCanister, 1)
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s decants a fuel canister from the %s reserve", t.actor.Name, roomLabel(t.actor.Room)),
		Cost:       t.tun.GatherCost,
		Visibility: VisibilityRoom,
	}
}

type depositHandler struct{}

func (depositHandler) execute(t *turn) Outcome {
	if t.actor.Room != ship.RoomEngine {
		return t.failed(fmt.Sprintf("%s has no intake to feed outside the engine room", t.actor.Name))
	}
	canisters := t.actor.Inventory[ship.ItemFuelCanister]
	if canisters < 1 {
		return t.failed(fmt.Sprintf("%s reaches for a canister and comes up empty", t.actor.Name))
	}
	t.actor.ConsumeItem(ship.ItemFuelCanister, canisters)
	t.ship.AddFuel(canisters * t.tun.FuelPerCanister)
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s feeds %d canister(s) into the engine — ship fuel at %d", t.actor.Name, canisters, t.ship.Fuel),
		Cost:       t.tun.DepositCost,
		Visibility: VisibilityGlobal,
	}
}

type siphonHandler struct{}

func (siphonHandler) execute(t *turn) Outcome {
	if t.actor.Room != ship.RoomEngine {
		return t.failed(fmt.Sprintf("%s can only bleed the main tank from the engine room", t.actor.Name))
	}
	if !t.ship.DrainFuel(t.tun.ExtractAmount) {
		return t.failed(fmt.Sprintf("%s finds the main tank too low to siphon", t.actor.Name))
	}
	t.actor.AddItem(ship.ItemFuelCanister, 1)
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s bleeds a canister back out of the main tank", t.actor.Name),
		Cost:       t.tun.SiphonCost,
		Visibility: VisibilityRoom,
	}
}
