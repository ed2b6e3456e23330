package tool

import (
	"fmt"

	"voidwake/internal/domain/ship"
)

type moveHandler struct{}

func (moveHandler) execute(t *turn) Outcome {
	dest := t.args.Destination
	if !ship.ValidRoom(dest) {
		return t.failed(fmt.Sprintf("%s bumps against a sealed bulkhead: no such room", t.actor.Name))
	}
	t.actor.Room = dest
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s rolls into the %s", t.actor.Name, roomLabel(dest)),
		Cost:       t.tun.MoveCost,
		Visibility: VisibilityRoom,
	}
}

type towHandler struct{}

func (towHandler) execute(t *turn) Outcome {
	target, ok := t.ship.Drones[t.args.TargetID]
	if !ok || target.Destroyed || target.ID == t.actor.ID || target.Room != t.actor.Room {
		return t.failed(fmt.Sprintf("%s finds nothing to tow here", t.actor.Name))
	}
	dest := t.args.Destination
	if !ship.ValidRoom(dest) {
		return t.failed(fmt.Sprintf("%s cannot tow toward a room that does not exist", t.actor.Name))
	}
	if t.actor.Battery < t.tun.TowCost {
		return t.failed(fmt.Sprintf("%s lacks the charge to haul %s", t.actor.Name, target.Name))
	}
	t.actor.Room = dest
	target.Room = dest
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s drags %s into the %s", t.actor.Name, target.Name, roomLabel(dest)),
		Cost:       t.tun.TowCost,
		Visibility: VisibilityGlobal,
	}
}
