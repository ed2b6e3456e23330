package tool

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"voidwake/internal/domain/ship"
)

var (
	ErrActorMissing = errors.New("actor missing")
	ErrActorOffline = errors.New("actor offline")
)

// turn bundles everything a handler may touch while resolving one action.
type turn struct {
	ship  *ship.Ship
	actor *ship.Drone
	args  Args
	tun   ship.Tuning
	rng   *rand.Rand
}

// Execute validates the actor, dispatches to the tool handler, and applies
// the outcome's battery cost. An offline or destroyed actor is rejected
// before any tool runs. An unknown tool fails but still pays the baseline
// idle cost, so an invalid decision is penalized exactly like a deliberate
// wait.
func Execute(kind Kind, args Args, actorID string, s *ship.Ship, tun ship.Tuning, rng *rand.Rand) (Outcome, error) {
	actor, ok := s.Drones[actorID]
	if !ok {
		return Outcome{}, ErrActorMissing
	}
	if actor.Status() != ship.StatusActive {
		return Outcome{}, ErrActorOffline
	}

	t := &turn{ship: s, actor: actor, args: args, tun: tun, rng: rng}

	h, ok := registry()[kind]
	var out Outcome
	if !ok {
		out = Outcome{
			Success:    false,
			Message:    fmt.Sprintf("%s emits an unrecognized directive and idles", actor.Name),
			Cost:       tun.IdleCost,
			Visibility: VisibilityPrivate,
		}
	} else {
		out = h.execute(t)
	}
	out.Tool = kind
	actor.SpendBattery(out.Cost)
	return out, nil
}

// failed builds a precondition-failure outcome. The turn is spent: a wasted
// hour costs the baseline idle amount.
func (t *turn) failed(msg string) Outcome {
	return Outcome{
		Success:    false,
		Message:    msg,
		Cost:       t.tun.IdleCost,
		Visibility: VisibilityPrivate,
	}
}

// blast zeroes the battery of every drone currently in the torpedo bay,
// actor included. Shared by the gather accident and detonate.
func (t *turn) blast() {
	for _, d := range t.ship.Drones {
		if !d.Destroyed && d.Room == ship.RoomTorpedoBay {
			d.Battery = 0
		}
	}
}

func roomLabel(r ship.Room) string {
	return strings.ReplaceAll(string(r), "_", " ")
}
