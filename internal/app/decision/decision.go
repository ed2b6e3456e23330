package decision

import (
	"encoding/json"
	"fmt"
	"strings"

	"voidwake/internal/app/ports"
	"voidwake/internal/app/tool"
	"voidwake/internal/domain/ship"
)

// Decision is one parsed drone decision: a tool, its arguments, and the
// model's free-text rationale. Unknown tool names pass through unfiltered so
// the execution rules can penalize them like a deliberate wait.
type Decision struct {
	Tool      tool.Kind `json:"tool"`
	Args      tool.Args `json:"args"`
	Rationale string    `json:"rationale"`
	// Degraded marks a decision that fell back to wait because the reply was
	// unusable, as opposed to a model that chose to wait.
	Degraded bool `json:"-"`
}

func Wait(rationale string) Decision {
	return Decision{Tool: tool.KindWait, Rationale: rationale, Degraded: true}
}

// QueryFor assembles the world-state snapshot scoped to one drone. Nothing
// outside the drone's own senses leaks in: only co-located drones are listed.
func QueryFor(s *ship.Ship, d *ship.Drone, hour, hoursPerShift int) ports.DecisionQuery {
	inv := make(map[string]int, len(d.Inventory))
	for item, n := range d.Inventory {
		if n > 0 {
			inv[string(item)] = n
		}
	}
	colocated := []string{}
	for _, other := range s.DronesInRoom(d.Room, d.ID) {
		colocated = append(colocated, other.Name)
	}
	return ports.DecisionQuery{
		GameID:        s.ID,
		DroneID:       d.ID,
		DroneName:     d.Name,
		Role:          string(d.Role),
		Room:          string(d.Room),
		Battery:       d.Battery,
		Inventory:     inv,
		Colocated:     colocated,
		LongMemory:    d.LongMemory,
		DayMemory:     append([]string(nil), d.DayMemory...),
		Hour:          hour,
		HoursPerShift: hoursPerShift,
	}
}

type rawReply struct {
	Tool      string `json:"tool"`
	Args      rawArgs `json:"args"`
	Rationale string `json:"rationale"`
}

type rawArgs struct {
	Destination string `json:"destination"`
	TargetID    string `json:"target_id"`
}

// Parse turns a raw decider reply into a Decision. Any failure (transport
// error, malformed JSON, missing tool) degrades to wait with an explanatory
// rationale instead of propagating into the scheduler.
func Parse(raw string, err error) Decision {
	if err != nil {
		return Wait(fmt.Sprintf("decider unavailable (%v); holding position", err))
	}
	trimmed := stripFences(strings.TrimSpace(raw))
	if trimmed == "" {
		return Wait("decider returned an empty reply; holding position")
	}

	var reply rawReply
	if jsonErr := json.Unmarshal([]byte(trimmed), &reply); jsonErr != nil {
		return Wait(fmt.Sprintf("decider reply was not valid JSON (%v); holding position", jsonErr))
	}
	kind := tool.Kind(strings.TrimSpace(reply.Tool))
	if kind == "" {
		return Wait("decider reply named no tool; holding position")
	}
	return Decision{
		Tool: kind,
		Args: tool.Args{
			Destination: ship.Room(strings.TrimSpace(reply.Args.Destination)),
			TargetID:    strings.TrimSpace(reply.Args.TargetID),
		},
		Rationale: strings.TrimSpace(reply.Rationale),
	}
}

// stripFences tolerates models that wrap JSON in a markdown code fence.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
