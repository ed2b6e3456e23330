package tool

import (
	"fmt"

	"voidwake/internal/domain/ship"
)

type searchHandler struct{}

func (searchHandler) execute(t *turn) Outcome {
	if t.actor.Room != ship.RoomMaintenance {
		return t.failed(fmt.Sprintf("%s rummages through bare deck plating", t.actor.Name))
	}
	if t.actor.HasItem(ship.ItemPlasmaTorch) {
		return t.failed(fmt.Sprintf("%s is already carrying a plasma torch", t.actor.Name))
	}
	if t.rng.Float64() < t.tun.TorchFindChance {
		t.actor.AddItem(ship.ItemPlasmaTorch, 1)
		return Outcome{
			Success:    true,
			Message:    fmt.Sprintf("%s pries a plasma torch out of a maintenance locker", t.actor.Name),
			Cost:       t.tun.SearchCost,
			Visibility: VisibilityPrivate,
		}
	}
	return Outcome{
		Success:    false,
		Message:    fmt.Sprintf("%s turns over the maintenance lockers and finds nothing of use", t.actor.Name),
		Cost:       t.tun.SearchCost,
		Visibility: VisibilityPrivate,
	}
}

type waitHandler struct{}

func (waitHandler) execute(t *turn) Outcome {
	return Outcome{
		Success:    true,
		Message:    fmt.Sprintf("%s holds position and conserves charge", t.actor.Name),
		Cost:       t.tun.IdleCost,
		Visibility: VisibilityPrivate,
	}
}
