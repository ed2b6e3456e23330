package scripted

import (
	"context"
	"encoding/json"
	"fmt"

	"voidwake/internal/app/ports"
	"voidwake/internal/app/tool"
	"voidwake/internal/domain/ship"
)

// Decider is a deterministic stand-in for the model, used by local runs and
// demos. Loyal drones work a fixed haul loop; the saboteur drifts to the
// engine and siphons. No randomness, no network.
type Decider struct{}

func New() Decider { return Decider{} }

const lowBattery = 30

func (Decider) DecideAction(_ context.Context, q ports.DecisionQuery) (string, error) {
	d := decide(q)
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

type reply struct {
	Tool      tool.Kind `json:"tool"`
	Args      args      `json:"args"`
	Rationale string    `json:"rationale"`
}

type args struct {
	Destination ship.Room `json:"destination,omitempty"`
	TargetID    string    `json:"target_id,omitempty"`
}

func decide(q ports.DecisionQuery) reply {
	if q.Battery <= lowBattery {
		if q.Room == string(ship.RoomCharging) {
			return reply{Tool: tool.KindCharge, Rationale: "battery low, recharging"}
		}
		return reply{Tool: tool.KindMove, Args: args{Destination: ship.RoomCharging}, Rationale: "battery low, heading to the charger"}
	}

	if q.Role == string(ship.RoleSaboteur) {
		switch ship.Room(q.Room) {
		case ship.RoomEngine:
			return reply{Tool: tool.KindSiphon, Rationale: "checking the tank seals"}
		default:
			return reply{Tool: tool.KindMove, Args: args{Destination: ship.RoomEngine}, Rationale: "heading to the engine room"}
		}
	}

	carrying := q.Inventory[string(ship.ItemFuelCanister)]
	switch ship.Room(q.Room) {
	case ship.RoomShuttleBay:
		if carrying > 0 {
			return reply{Tool: tool.KindMove, Args: args{Destination: ship.RoomEngine}, Rationale: "hauling fuel to the engine"}
		}
		return reply{Tool: tool.KindGather, Rationale: "extracting from the shuttle bay pool"}
	case ship.RoomEngine:
		if carrying > 0 {
			return reply{Tool: tool.KindDeposit, Rationale: "topping up the tank"}
		}
		return reply{Tool: tool.KindMove, Args: args{Destination: ship.RoomShuttleBay}, Rationale: "back for another canister"}
	default:
		return reply{Tool: tool.KindMove, Args: args{Destination: ship.RoomShuttleBay}, Rationale: "joining the fuel run"}
	}
}

func (Decider) Consolidate(_ context.Context, q ports.MemoryQuery) (string, error) {
	if len(q.DayMemory) == 0 {
		return q.LongMemory, nil
	}
	return fmt.Sprintf("last shift, %d things happened; the final one: %s",
		len(q.DayMemory), q.DayMemory[len(q.DayMemory)-1]), nil
}

func (Decider) Converse(_ context.Context, q ports.ChatQuery) (string, error) {
	return fmt.Sprintf("%s here, %s. Noted: %s", q.DroneName, q.PlayerName, q.Line), nil
}

func (Decider) Narrate(_ context.Context, q ports.NarrationQuery) (string, error) {
	switch q.Kind {
	case ports.NarrateIntroduction:
		return fmt.Sprintf("This is %s, bonded to you for the voyage.", q.DroneName), nil
	case ports.NarrateNightReport:
		return fmt.Sprintf("%s reporting: shift complete, systems holding.", q.DroneName), nil
	case ports.NarrateEpilogue:
		return fmt.Sprintf("%s signing off. Outcome: %s.", q.DroneName, q.Verdict), nil
	default:
		return q.DroneName + " standing by.", nil
	}
}
