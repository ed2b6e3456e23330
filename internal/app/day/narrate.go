package day

import (
	"context"
	"log"
	"strings"
	"sync"

	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"
)

// dreamPhase consolidates each drone's day into its long-term memory. The
// requests are independent (each goroutine mutates only its own drone), so
// they dispatch in parallel, bounded by drone count. Afterwards every
// drone's per-day memory, transcript, and the public log are cleared.
func (r Runner) dreamPhase(ctx context.Context, s *ship.Ship) {
	var wg sync.WaitGroup
	for _, d := range s.Drones {
		if d.Destroyed || !d.HadActivity {
			continue
		}
		wg.Add(1)
		go func(d *ship.Drone) {
			defer wg.Done()
			transcript := make([]string, 0, len(d.Transcript))
			for _, line := range d.Transcript {
				transcript = append(transcript, line.From+": "+line.Text)
			}
			text, err := r.Decider.Consolidate(ctx, ports.MemoryQuery{
				GameID:     s.ID,
				DroneID:    d.ID,
				DroneName:  d.Name,
				LongMemory: d.LongMemory,
				DayMemory:  append([]string(nil), d.DayMemory...),
				Transcript: transcript,
			})
			if err != nil {
				log.Printf("day: game %s: drone %s dream failed, memory kept: %v", s.ID, d.ID, err)
				return
			}
			if strings.TrimSpace(text) != "" {
				d.LongMemory = strings.TrimSpace(text)
			}
		}(d)
	}
	wg.Wait()

	for _, d := range s.Drones {
		d.ClearDay()
	}
	s.DayLog = nil
}

// Introduce runs the wakeup protocol: every non-destroyed drone introduces
// itself to its foster. Same fan-out shape as the dream phase.
func (r Runner) Introduce(ctx context.Context, s *ship.Ship) {
	var wg sync.WaitGroup
	for _, d := range s.Drones {
		if d.Destroyed {
			continue
		}
		wg.Add(1)
		go func(d *ship.Drone) {
			defer wg.Done()
			text, err := r.Decider.Narrate(ctx, ports.NarrationQuery{
				Kind:       ports.NarrateIntroduction,
				GameID:     s.ID,
				DroneID:    d.ID,
				DroneName:  d.Name,
				Role:       string(d.Role),
				LongMemory: d.LongMemory,
			})
			if err != nil {
				log.Printf("day: game %s: drone %s introduction failed: %v", s.ID, d.ID, err)
				return
			}
			r.Dispatch.Reply(ports.ReplyContext{GameID: s.ID, PlayerID: d.FosterID}, text)
		}(d)
	}
	wg.Wait()
}

// nightReports prompts every speech-capable drone, meaning active and
// physically in the stasis room, for its end-of-day report to its foster.
func (r Runner) nightReports(ctx context.Context, s *ship.Ship) {
	var wg sync.WaitGroup
	for _, d := range s.Drones {
		if !d.CanSpeak() {
			continue
		}
		wg.Add(1)
		go func(d *ship.Drone) {
			defer wg.Done()
			text, err := r.Decider.Narrate(ctx, ports.NarrationQuery{
				Kind:       ports.NarrateNightReport,
				GameID:     s.ID,
				DroneID:    d.ID,
				DroneName:  d.Name,
				Role:       string(d.Role),
				LongMemory: d.LongMemory,
			})
			if err != nil {
				log.Printf("day: game %s: drone %s night report failed: %v", s.ID, d.ID, err)
				return
			}
			r.Dispatch.Reply(ports.ReplyContext{GameID: s.ID, PlayerID: d.FosterID}, text)
		}(d)
	}
	wg.Wait()
}

// epilogues generates closing narration for every surviving drone once the
// game is decided.
func (r Runner) epilogues(ctx context.Context, s *ship.Ship, verdict ship.Verdict) {
	var wg sync.WaitGroup
	for _, d := range s.Drones {
		if d.Destroyed {
			continue
		}
		wg.Add(1)
		go func(d *ship.Drone) {
			defer wg.Done()
			text, err := r.Decider.Narrate(ctx, ports.NarrationQuery{
				Kind:       ports.NarrateEpilogue,
				GameID:     s.ID,
				DroneID:    d.ID,
				DroneName:  d.Name,
				Role:       string(d.Role),
				LongMemory: d.LongMemory,
				Verdict:    string(verdict),
			})
			if err != nil {
				log.Printf("day: game %s: drone %s epilogue failed: %v", s.ID, d.ID, err)
				return
			}
			r.Dispatch.Send(s.ID, ports.ChannelEvents, d.Name+": "+text)
		}(d)
	}
	wg.Wait()
}
