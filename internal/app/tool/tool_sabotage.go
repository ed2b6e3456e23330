package tool

import (
	"fmt"

	"voidwake/internal/domain/ship"
)

type ventHandler struct{}

func (ventHandler) execute(t *turn) Outcome {
	t.ship.ConsumeOxygen(t.tun.VentOxygenLoss)
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("an airlock cycles without authorization — oxygen drops to %d", t.ship.Oxygen),
		Cost:       t.tun.VentCost,
		Visibility: VisibilityGlobal,
	}
}

type detonateHandler struct{}

func (detonateHandler) execute(t *turn) Outcome {
	if t.actor.Room != ship.RoomTorpedoBay {
		return t.failed(fmt.Sprintf("%s has nothing volatile within reach", t.actor.Name))
	}
	t.blast()
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s triggers the torpedo bay fuel lines — the blast knocks out every drone inside", t.actor.Name),
		Cost:       0,
		Visibility: VisibilityGlobal,
	}
}

type incinerateDroneHandler struct{}

func (incinerateDroneHandler) execute(t *turn) Outcome {
	if !t.actor.HasItem(ship.ItemPlasmaTorch) {
		return t.failed(fmt.Sprintf("%s has no torch to burn with", t.actor.Name))
	}
	if t.actor.Battery < t.tun.IncinerateCost {
		return t.failed(fmt.Sprintf("%s cannot power the torch on this little charge", t.actor.Name))
	}
	target, ok := t.ship.Drones[t.args.TargetID]
	if !ok || target.Destroyed || target.ID == t.actor.ID || target.Room != t.actor.Room {
		return t.failed(fmt.Sprintf("%s sweeps the torch across an empty room", t.actor.Name))
	}
	// Stasis pods shield their drones from hostile contact.
	if target.Room == ship.RoomStasis {
		return t.failed(fmt.Sprintf("%s cannot burn %s through the pod shielding", t.actor.Name, target.Name))
	}
	target.Destroyed = true
	target.Battery = 0
	t.actor.ConsumeItem(ship.ItemPlasmaTorch, 1)
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s cuts %s apart with a plasma torch", t.actor.Name, target.Name),
		Cost:       t.tun.IncinerateCost,
		Visibility: VisibilityRoom,
	}
}

type incineratePodHandler struct{}

func (incineratePodHandler) execute(t *turn) Outcome {
	if !t.actor.HasItem(ship.ItemPlasmaTorch) {
		return t.failed(fmt.Sprintf("%s has no torch to burn with", t.actor.Name))
	}
	if t.actor.Battery < t.tun.IncinerateCost {
		return t.failed(fmt.Sprintf("%s cannot power the torch on this little charge", t.actor.Name))
	}
	if t.actor.Room != ship.RoomStasis {
		return t.failed(fmt.Sprintf("%s is nowhere near the stasis pods", t.actor.Name))
	}
	target, ok := t.ship.Players[t.args.TargetID]
	if !ok || !target.Alive {
		return t.failed(fmt.Sprintf("%s finds no living occupant in that pod", t.actor.Name))
	}
	target.Alive = false
	t.actor.ConsumeItem(ship.ItemPlasmaTorch, 1)
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s burns through a stasis pod — %s will not wake again", t.actor.Name, target.Name),
		Cost:       t.tun.IncinerateCost,
		Visibility: VisibilityGlobal,
	}
}
