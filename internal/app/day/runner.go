package day

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"
)

// Runner simulates one full day for one game. The caller owns the ship for
// the duration of RunDay: no concurrent mutation is permitted while a day is
// in flight (the game manager enforces this with a per-game lock).
type Runner struct {
	Decider  ports.Decider
	Dispatch ports.Dispatcher
	Games    ports.GameRepository
	Archive  ports.GameArchiver
	Metrics  ports.SimMetrics
	Tuning   ship.Tuning
	Rand     *rand.Rand
	Now      func() time.Time

	// NextDay enqueues another full day for the game without blocking the
	// caller. Wired by the game manager; used for the immediate same-state
	// self-loop when the day-ready condition still holds at day's end.
	NextDay func(gameID string)
}

func (r Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r Runner) rng() *rand.Rand {
	if r.Rand != nil {
		return r.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// RunDay executes the five-stage pipeline: dream, work shift, physics,
// arbitration, transition. A fault escaping any stage is caught here, a
// system notice is emitted, and the day's snapshot is not persisted. In-place
// drone memory mutations from completed hours are not rolled back; see the
// incremental-persistence note in DESIGN.md.
func (r Runner) RunDay(ctx context.Context, s *ship.Ship) (verdict ship.Verdict, err error) {
	versionRead := s.Version
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("day: game %s cycle %d pipeline fault: %v", s.ID, s.Cycle, rec)
			r.Dispatch.Send(s.ID, ports.ChannelSystem, "a system error interrupted the shift; the day's record is lost")
			verdict, err = "", fmt.Errorf("day pipeline fault: %v", rec)
		}
	}()

	r.dreamPhase(ctx, s)
	r.shiftPhase(ctx, s)
	reqToday, reqTomorrow := r.physicsPhase(s)
	verdict = ship.Arbitrate(s.Fuel, reqToday, reqTomorrow)
	r.reportCycle(s, verdict, reqToday, reqTomorrow)
	r.transition(ctx, s, verdict)

	s.UpdatedAt = r.now()
	s.Version++
	if saveErr := r.Games.SaveSnapshot(ctx, s, versionRead); saveErr != nil {
		// Stale or failed writes are recoverable: skip and log, never
		// surface to players.
		if errors.Is(saveErr, ports.ErrConflict) {
			if r.Metrics != nil {
				r.Metrics.RecordSaveConflict()
			}
			log.Printf("day: game %s snapshot stale at version %d, write skipped", s.ID, versionRead)
		} else {
			log.Printf("day: game %s snapshot save failed: %v", s.ID, saveErr)
		}
	}
	if r.Metrics != nil {
		r.Metrics.RecordDay(verdict)
	}
	return verdict, nil
}

// physicsPhase applies the cycle's oxygen decay and computes the fuel
// requirements. The cycle counter increments after the computation, so the
// report reflects the cycle just completed while tomorrow's lookup uses the
// post-increment value.
func (r Runner) physicsPhase(s *ship.Ship) (reqToday, reqTomorrow int) {
	loss := ship.OxygenLoss(r.Tuning.BaseOxygenLoss, s.LivingPlayers(), len(s.Players))
	s.ConsumeOxygen(loss)
	reqToday = ship.FuelRequirement(s.Cycle, r.Tuning.FuelReqBase, r.Tuning.FuelReqGrowthPct)
	reqTomorrow = ship.FuelRequirement(s.Cycle+1, r.Tuning.FuelReqBase, r.Tuning.FuelReqGrowthPct)
	s.Cycle++
	return reqToday, reqTomorrow
}

func (r Runner) reportCycle(s *ship.Ship, verdict ship.Verdict, reqToday, reqTomorrow int) {
	r.Dispatch.Send(s.ID, ports.ChannelSystem, fmt.Sprintf(
		"cycle %d complete — oxygen %d, fuel %d (needed %d, next cycle %d): %s",
		s.Cycle-1, s.Oxygen, s.Fuel, reqToday, reqTomorrow, verdict))
}

func (r Runner) transition(ctx context.Context, s *ship.Ship, verdict ship.Verdict) {
	switch verdict {
	case ship.VerdictVictory, ship.VerdictFailure:
		r.epilogues(ctx, s, verdict)
		if r.Archive != nil {
			if err := r.Archive.ArchiveGame(ctx, s, verdict); err != nil {
				log.Printf("day: game %s archive failed: %v", s.ID, err)
			}
		}
	default:
		if s.DayReady() {
			// The day-ready condition still holds (oxygen just ran out, or
			// everyone is dead or asleep): the next day begins immediately
			// with no night in between. Scheduled as a background
			// continuation so this call chain unwinds instead of recursing
			// through an indefinite run of days.
			if r.NextDay != nil {
				r.NextDay(s.ID)
			}
			return
		}
		r.nightReports(ctx, s)
		s.Phase = ship.PhaseNight
	}
}

func (r Runner) pace(ctx context.Context) {
	if r.Tuning.Pace <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(r.Tuning.Pace):
	}
}
