package tool

import (
	"fmt"

	"voidwake/internal/domain/ship"
)

type chargeHandler struct{}

func (chargeHandler) execute(t *turn) Outcome {
	if t.actor.Room != ship.RoomCharging {
		return t.failed(fmt.Sprintf("%s gropes for a charging socket that is not there", t.actor.Name))
	}

	// A destruction order resolves the moment the condemned drone docks.
	if t.ship.DestructionQueued(t.actor.ID) {
		t.actor.Destroyed = true
		t.actor.Battery = 0
		t.ship.AbortDestruction(t.actor.ID)
		return Outcome{
			Success:    true,
			Message:    fmt.Sprintf("the station locks around %s and executes its decommission order", t.actor.Name),
			Cost:       0,
			Visibility: VisibilityGlobal,
		}
	}

	t.actor.ChargeBattery(ship.BatteryMax)
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s docks at the station and charges to full", t.actor.Name),
		Cost:       0,
		Visibility: VisibilityGlobal,
	}
}

type drainHandler struct{}

func (drainHandler) execute(t *turn) Outcome {
	target, ok := t.ship.Drones[t.args.TargetID]
	if !ok || target.Destroyed || target.ID == t.actor.ID || target.Room != t.actor.Room {
		return t.failed(fmt.Sprintf("%s finds no drone here to tap", t.actor.Name))
	}
	// Stasis pods shield their drones from hostile contact.
	if target.Room == ship.RoomStasis {
		return t.failed(fmt.Sprintf("%s cannot reach %s through the pod shielding", t.actor.Name, target.Name))
	}

	// The victim loses up to the cap; the actor gains a smaller fixed amount.
	// The exchange is deliberately lossy.
	loss := t.tun.DrainCap
	if target.Battery < loss {
		loss = target.Battery
	}
	target.SpendBattery(loss)
	t.actor.ChargeBattery(t.tun.DrainBenefit)

	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s clamps onto %s and pulls %d charge", t.actor.Name, target.Name, loss),
		Cost:       0,
		Visibility: VisibilityRoom,
	}
}
