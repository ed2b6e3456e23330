package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"voidwake/internal/app/command"
	"voidwake/internal/app/day"
	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"
)

var (
	ErrGameOver     = errors.New("game already decided")
	ErrShuttingDown = errors.New("server shutting down")
)

// Manager owns the live games. Every mutation of a ship (a command, a day
// simulation, an introduction round) goes through the per-game session lock,
// which is what makes the single-flight guarantee hold: one day for one game
// never overlaps another pass or a command for the same game, while different
// games proceed in parallel.
type Manager struct {
	games      ports.GameRepository
	background ports.Backgrounder
	runner     day.Runner
	commands   command.Processor
	tuning     ship.Tuning

	Now  func() time.Time
	Rand *rand.Rand

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

type session struct {
	mu      sync.Mutex
	ship    *ship.Ship
	verdict ship.Verdict // set once terminal
}

// NewManager wires the day runner's and command processor's continuation
// hooks back into the manager, closing the scheduling loop.
func NewManager(games ports.GameRepository, background ports.Backgrounder, runner day.Runner, commands command.Processor, tun ship.Tuning) *Manager {
	m := &Manager{
		games:      games,
		background: background,
		runner:     runner,
		commands:   commands,
		tuning:     tun,
		Now:        time.Now,
		sessions:   map[string]*session{},
	}
	m.runner.NextDay = m.ScheduleDay
	m.commands.StartDay = m.ScheduleDay
	m.commands.Wakeup = m.ScheduleWakeup
	return m
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Manager) rng() *rand.Rand {
	if m.Rand != nil {
		return m.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Create starts a fresh game for the given players and persists its initial
// snapshot. The returned ship is the live aggregate; callers must not retain
// it past the call.
func (m *Manager) Create(ctx context.Context, playerIDs, playerNames []string) (*ship.Ship, error) {
	if len(playerIDs) == 0 {
		return nil, errors.New("a game needs at least one player")
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrShuttingDown
	}
	id := uuid.NewString()
	s := ship.NewShip(id, playerIDs, playerNames, m.tuning, m.rng(), m.now())
	sess := &session{ship: s}
	m.sessions[id] = sess
	m.mu.Unlock()

	if err := m.games.SaveSnapshot(ctx, s, 0); err != nil {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, fmt.Errorf("persist new game: %w", err)
	}
	return s, nil
}

// Do runs fn with the game's session lock held and the live ship. Sessions
// absent from memory (after a restart) are lazily rehydrated from the
// repository.
func (m *Manager) Do(ctx context.Context, gameID string, fn func(ctx context.Context, s *ship.Ship) error) error {
	sess, err := m.session(ctx, gameID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(ctx, sess.ship)
}

func (m *Manager) session(ctx context.Context, gameID string) (*session, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrShuttingDown
	}
	if sess, ok := m.sessions[gameID]; ok {
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	s, err := m.games.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrShuttingDown
	}
	// Another caller may have rehydrated while we were loading.
	if sess, ok := m.sessions[gameID]; ok {
		return sess, nil
	}
	sess := &session{ship: s}
	m.sessions[gameID] = sess
	return sess, nil
}

// HandleCommand applies one raw player line under the session lock.
func (m *Manager) HandleCommand(ctx context.Context, gameID, playerID, line string) error {
	sess, err := m.session(ctx, gameID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.verdict != "" {
		return ErrGameOver
	}
	return m.commands.Handle(ctx, sess.ship, playerID, line)
}

// ScheduleDay enqueues one day simulation as a background continuation. The
// command handler that triggered it returns immediately.
func (m *Manager) ScheduleDay(gameID string) {
	m.background.Schedule(gameID, func(ctx context.Context) {
		m.runDay(ctx, gameID)
	})
}

func (m *Manager) runDay(ctx context.Context, gameID string) {
	sess, err := m.session(ctx, gameID)
	if err != nil {
		log.Printf("game: day for %s not started: %v", gameID, err)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.verdict != "" {
		return
	}
	if sess.ship.Phase != ship.PhaseDay {
		log.Printf("game: day for %s skipped, phase is %s", gameID, sess.ship.Phase)
		return
	}
	verdict, err := m.runner.RunDay(ctx, sess.ship)
	if err != nil {
		log.Printf("game: day for %s aborted: %v", gameID, err)
		return
	}
	if verdict == ship.VerdictVictory || verdict == ship.VerdictFailure {
		sess.verdict = verdict
	}
}

// ScheduleWakeup enqueues the introduction round for every drone.
func (m *Manager) ScheduleWakeup(gameID string) {
	m.background.Schedule(gameID, func(ctx context.Context) {
		sess, err := m.session(ctx, gameID)
		if err != nil {
			log.Printf("game: wakeup for %s not started: %v", gameID, err)
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		m.runner.Introduce(ctx, sess.ship)
	})
}

// Verdict reports the terminal outcome, if any.
func (m *Manager) Verdict(ctx context.Context, gameID string) (ship.Verdict, error) {
	sess, err := m.session(ctx, gameID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.verdict, nil
}

// Close stops acceptance of new games and commands. An in-flight day holds
// its session lock and runs to completion; there is no mid-day abort.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}
