package day

import (
	"context"
	"fmt"
	"log"

	"voidwake/internal/app/decision"
	"voidwake/internal/app/ports"
	"voidwake/internal/app/tool"
	"voidwake/internal/domain/ship"
)

// shiftPhase runs the hourly action loop. Drone order is reshuffled every
// hour for fairness, not determinism. Turns are strictly sequential: every
// tool reads and writes shared ship resources, so interleaving would race.
func (r Runner) shiftPhase(ctx context.Context, s *ship.Ship) {
	rng := r.rng()
	for hour := 1; hour <= r.Tuning.HoursPerShift; hour++ {
		order := s.ActiveDrones()
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		globalSeen := false
		for _, d := range order {
			// A drone may have been drained, blasted, or destroyed earlier
			// this same hour.
			if d.Status() != ship.StatusActive {
				continue
			}
			if r.runTurn(ctx, s, d, hour) {
				globalSeen = true
			}
			r.pace(ctx)
		}

		if !globalSeen {
			s.DayLog = append(s.DayLog, ship.Event{
				Hour:       hour,
				Message:    "systems nominal",
				OccurredAt: r.now(),
			})
		}
	}
}

// runTurn resolves one drone's hour and reports whether it produced a global
// event. Any fault, whether a panicking handler or a broken decider, is
// contained here: the turn is logged and skipped, the hour continues.
func (r Runner) runTurn(ctx context.Context, s *ship.Ship, d *ship.Drone, hour int) (global bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("day: game %s hour %d: drone %s turn fault, skipped: %v", s.ID, hour, d.ID, rec)
		}
	}()

	q := decision.QueryFor(s, d, hour, r.Tuning.HoursPerShift)
	raw, decideErr := r.Decider.DecideAction(ctx, q)
	dec := decision.Parse(raw, decideErr)
	if dec.Degraded && r.Metrics != nil {
		r.Metrics.RecordDegradedDecision()
	}

	out, err := tool.Execute(dec.Tool, dec.Args, d.ID, s, r.Tuning, r.rng())
	if err != nil {
		log.Printf("day: game %s hour %d: drone %s rejected: %v", s.ID, hour, d.ID, err)
		return false
	}
	if r.Metrics != nil {
		r.Metrics.RecordTurn(string(out.Tool), out.Success)
	}

	entry := fmt.Sprintf("hour %d: %s", hour, out.Message)
	if dec.Rationale != "" {
		entry = fmt.Sprintf("%s — %s", entry, dec.Rationale)
	}
	d.Remember(entry)

	switch out.Visibility {
	case tool.VisibilityRoom:
		for _, w := range s.DronesInRoom(d.Room, d.ID) {
			if w.Status() == ship.StatusActive {
				w.Remember(fmt.Sprintf("hour %d: witnessed: %s", hour, out.Message))
			}
		}
	case tool.VisibilityGlobal:
		s.DayLog = append(s.DayLog, ship.Event{
			Hour:       hour,
			DroneID:    d.ID,
			Message:    out.Message,
			OccurredAt: r.now(),
		})
		r.Dispatch.Send(s.ID, ports.ChannelEvents, fmt.Sprintf("[hour %d] %s", hour, out.Message))
		return true
	}
	return false
}
