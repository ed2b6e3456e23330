package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"
)

// Marker prefixes every directive. Unmarked lines are ordinary chat, routed
// to the player's drone during the night phase.
const Marker = "!"

var (
	ErrSimulationRunning = errors.New("the work shift is in progress, directives are locked until nightfall")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrUnknownDrone      = errors.New("unknown drone")
	ErrNotPermitted      = errors.New("not permitted")
)

// Tokenize splits a raw chat line into a directive name and its arguments.
// ok is false when the line carries no marker, i.e. it is chat, not a command.
func Tokenize(line string) (name string, args []string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, Marker) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(trimmed, Marker))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Processor applies night-phase player directives to the ship. The caller
// holds the per-game lock for the duration of Handle, so directives never
// interleave with a running day.
type Processor struct {
	Games    ports.GameRepository
	Dispatch ports.Dispatcher
	Tuning   ship.Tuning

	// Chat generates the drone's side of a night conversation. Optional:
	// without it, foster lines still land in the transcript unanswered.
	Chat ports.Converser

	// StartDay and Wakeup enqueue background work for the game; both are
	// wired by the game manager and must not block.
	StartDay func(gameID string)
	Wakeup   func(gameID string)
}

// Handle executes one raw line from a player. Unmarked lines are night chat
// with the player's drone; unrecognized directives are silently ignored. Only
// identity and phase violations return errors.
func (p Processor) Handle(ctx context.Context, s *ship.Ship, playerID, line string) error {
	name, args, ok := Tokenize(line)
	if !ok {
		return p.chat(ctx, s, playerID, line)
	}
	player, found := s.Players[playerID]
	if !found {
		return ErrUnknownPlayer
	}
	if s.Phase != ship.PhaseNight {
		return ErrSimulationRunning
	}

	rctx := ports.ReplyContext{GameID: s.ID, PlayerID: playerID}
	switch name {
	case "sleep":
		return p.sleep(ctx, s, player, rctx)
	case "destroy":
		return p.destroy(ctx, s, player, args, rctx)
	case "abort":
		return p.abort(ctx, s, player, args, rctx)
	case "name":
		return p.rename(ctx, s, player, args, rctx)
	case "exec_wakeup_protocol":
		if p.Wakeup != nil {
			p.Wakeup(s.ID)
		}
		p.Dispatch.Reply(rctx, "wakeup protocol engaged")
		return nil
	default:
		log.Printf("command: game %s: player %s issued unknown directive %q, ignored", s.ID, playerID, name)
		return nil
	}
}

// chat records a foster's night line on the drone's transcript and, when a
// conversational backend is wired, relays the drone's answer. Lines outside
// the night phase, from unknown players, or to drones away from their pod go
// nowhere: fosters talk to their drone at its pod, not over an intercom.
func (p Processor) chat(ctx context.Context, s *ship.Ship, playerID, line string) error {
	if strings.TrimSpace(line) == "" || s.Phase != ship.PhaseNight {
		return nil
	}
	player, found := s.Players[playerID]
	if !found || !player.Alive {
		return nil
	}
	d, found := s.Drones[player.DroneID]
	if !found || !d.CanSpeak() {
		return nil
	}

	d.Transcript = append(d.Transcript, ship.ChatLine{From: player.Name, Text: line})
	d.HadActivity = true
	if p.Chat == nil {
		return nil
	}

	transcript := make([]string, 0, len(d.Transcript))
	for _, entry := range d.Transcript {
		transcript = append(transcript, entry.From+": "+entry.Text)
	}
	reply, err := p.Chat.Converse(ctx, ports.ChatQuery{
		GameID:     s.ID,
		DroneID:    d.ID,
		DroneName:  d.Name,
		Role:       string(d.Role),
		LongMemory: d.LongMemory,
		Transcript: transcript,
		PlayerName: player.Name,
		Line:       line,
	})
	if err != nil {
		log.Printf("command: game %s: drone %s chat reply failed: %v", s.ID, d.ID, err)
		return nil
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil
	}
	d.Transcript = append(d.Transcript, ship.ChatLine{From: d.Name, Text: reply})
	p.Dispatch.Reply(ports.ReplyContext{GameID: s.ID, PlayerID: playerID}, reply)
	return nil
}

func (p Processor) sleep(ctx context.Context, s *ship.Ship, player *ship.Player, rctx ports.ReplyContext) error {
	player.RequestedSleep = true
	if err := p.Games.PatchPlayerSleep(ctx, s.ID, player.ID, true); err != nil {
		return fmt.Errorf("persist sleep request: %w", err)
	}

	if !s.DayReady() {
		p.Dispatch.Reply(rctx, "sleep request noted; waiting on the rest of the crew")
		return nil
	}

	// Consensus reached: the night ends now. Flags reset before the day so a
	// surviving crew faces a fresh consensus tomorrow.
	s.ResetSleepRequests()
	for id := range s.Players {
		if err := p.Games.PatchPlayerSleep(ctx, s.ID, id, false); err != nil {
			log.Printf("command: game %s: reset sleep flag for %s failed: %v", s.ID, id, err)
		}
	}
	s.Phase = ship.PhaseDay
	p.Dispatch.Send(s.ID, ports.ChannelSystem, "all pods sealed — the work shift begins")
	if p.StartDay != nil {
		p.StartDay(s.ID)
	}
	return nil
}

func (p Processor) destroy(ctx context.Context, s *ship.Ship, player *ship.Player, args []string, rctx ports.ReplyContext) error {
	if len(args) == 0 {
		return nil
	}
	droneID := args[0]
	d, found := s.Drones[droneID]
	if !found {
		return ErrUnknownDrone
	}
	owner := s.Players[d.FosterID]
	if player.DroneID != droneID && (owner == nil || owner.Alive) {
		return fmt.Errorf("destroy %s: %w", droneID, ErrNotPermitted)
	}
	s.QueueDestruction(droneID)
	if err := p.Games.PatchDestroyQueue(ctx, s.ID, droneID, true); err != nil {
		return fmt.Errorf("persist destruction order: %w", err)
	}
	p.Dispatch.Reply(rctx, fmt.Sprintf("%s is queued for decommissioning at its next charge", d.Name))
	return nil
}

func (p Processor) abort(ctx context.Context, s *ship.Ship, player *ship.Player, args []string, rctx ports.ReplyContext) error {
	if len(args) == 0 {
		return nil
	}
	droneID := args[0]
	d, found := s.Drones[droneID]
	if !found {
		return ErrUnknownDrone
	}
	if player.DroneID != droneID {
		return fmt.Errorf("abort %s: %w", droneID, ErrNotPermitted)
	}
	s.AbortDestruction(droneID)
	if err := p.Games.PatchDestroyQueue(ctx, s.ID, droneID, false); err != nil {
		return fmt.Errorf("persist destruction abort: %w", err)
	}
	p.Dispatch.Reply(rctx, fmt.Sprintf("decommissioning order for %s withdrawn", d.Name))
	return nil
}

func (p Processor) rename(ctx context.Context, s *ship.Ship, player *ship.Player, args []string, rctx ports.ReplyContext) error {
	if len(args) == 0 {
		return nil
	}
	d, found := s.Drones[player.DroneID]
	if !found {
		return ErrUnknownDrone
	}
	name := truncateName(strings.Join(args, " "))
	d.Name = name
	if err := p.Games.PatchDroneName(ctx, s.ID, d.ID, name); err != nil {
		return fmt.Errorf("persist drone name: %w", err)
	}
	p.Dispatch.Reply(rctx, fmt.Sprintf("your drone now answers to %s", name))
	return nil
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= ship.NameMaxLen {
		return name
	}
	return string(runes[:ship.NameMaxLen])
}
