package day

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"
)

const waitReply = `{"tool":"wait","args":{},"rationale":"conserving charge"}`

type stubDecider struct {
	mu               sync.Mutex
	actionFn         func(q ports.DecisionQuery) (string, error)
	consolidateFn    func(q ports.MemoryQuery) (string, error)
	narrateFn        func(q ports.NarrationQuery) (string, error)
	actionCalls      int
	consolidateCalls int
	narrateCalls     int
}

func (d *stubDecider) DecideAction(_ context.Context, q ports.DecisionQuery) (string, error) {
	d.mu.Lock()
	d.actionCalls++
	fn := d.actionFn
	d.mu.Unlock()
	if fn != nil {
		return fn(q)
	}
	return waitReply, nil
}

func (d *stubDecider) Consolidate(_ context.Context, q ports.MemoryQuery) (string, error) {
	d.mu.Lock()
	d.consolidateCalls++
	fn := d.consolidateFn
	d.mu.Unlock()
	if fn != nil {
		return fn(q)
	}
	return "another cycle survived", nil
}

func (d *stubDecider) Narrate(_ context.Context, q ports.NarrationQuery) (string, error) {
	d.mu.Lock()
	d.narrateCalls++
	fn := d.narrateFn
	d.mu.Unlock()
	if fn != nil {
		return fn(q)
	}
	return "all quiet", nil
}

type sentMessage struct {
	GameID  string
	Channel string
	Text    string
}

type stubDispatcher struct {
	mu      sync.Mutex
	sent    []sentMessage
	replies []sentMessage
}

func (d *stubDispatcher) Send(gameID, channel, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentMessage{GameID: gameID, Channel: channel, Text: text})
}

func (d *stubDispatcher) Reply(rctx ports.ReplyContext, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.replies = append(d.replies, sentMessage{GameID: rctx.GameID, Channel: rctx.PlayerID, Text: text})
}

type stubGameRepo struct {
	saveErr   error
	saveCalls int
	lastSaved *ship.Ship
	lastVer   int64
}

func (r *stubGameRepo) Load(_ context.Context, _ string) (*ship.Ship, error) {
	return nil, ports.ErrNotFound
}

func (r *stubGameRepo) SaveSnapshot(_ context.Context, s *ship.Ship, expectedVersion int64) error {
	r.saveCalls++
	r.lastSaved = s
	r.lastVer = expectedVersion
	return r.saveErr
}

func (r *stubGameRepo) PatchPlayerSleep(_ context.Context, _, _ string, _ bool) error { return nil }
func (r *stubGameRepo) PatchDroneName(_ context.Context, _, _, _ string) error       { return nil }
func (r *stubGameRepo) PatchDestroyQueue(_ context.Context, _, _ string, _ bool) error {
	return nil
}

type stubArchiver struct {
	mu      sync.Mutex
	calls   int
	verdict ship.Verdict
}

func (a *stubArchiver) ArchiveGame(_ context.Context, _ *ship.Ship, verdict ship.Verdict) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	a.verdict = verdict
	return nil
}

type stubMetrics struct {
	mu        sync.Mutex
	days      int
	turns     int
	degraded  int
	conflicts int
}

func (m *stubMetrics) RecordDay(ship.Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days++
}

func (m *stubMetrics) RecordTurn(string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns++
}

func (m *stubMetrics) RecordDegradedDecision() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.degraded++
}

func (m *stubMetrics) RecordSaveConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

func testTuning() ship.Tuning {
	tun := ship.DefaultTuning()
	tun.Pace = 0
	return tun
}

func testShip() *ship.Ship {
	return &ship.Ship{
		ID:             "g1",
		Oxygen:         ship.OxygenMax,
		Fuel:           0,
		ShuttleBayFuel: 60,
		TorpedoBayFuel: 40,
		Cycle:          1,
		Phase:          ship.PhaseDay,
		Players: map[string]*ship.Player{
			"p1": {ID: "p1", Name: "Ada", Alive: true, DroneID: "d1"},
			"p2": {ID: "p2", Name: "Ben", Alive: true, DroneID: "d2"},
		},
		Drones: map[string]*ship.Drone{
			"d1": {ID: "d1", Name: "Unit-1", FosterID: "p1", Room: ship.RoomStasis, Battery: 100, Role: ship.RoleLoyal, Inventory: map[ship.Item]int{}},
			"d2": {ID: "d2", Name: "Unit-2", FosterID: "p2", Room: ship.RoomStasis, Battery: 100, Role: ship.RoleSaboteur, Inventory: map[ship.Item]int{}},
		},
		Station: ship.Station{PendingDestroy: map[string]bool{}},
		Version: 1,
	}
}

func testRunner(dec *stubDecider, repo *stubGameRepo, disp *stubDispatcher) Runner {
	return Runner{
		Decider:  dec,
		Dispatch: disp,
		Games:    repo,
		Tuning:   testTuning(),
		Rand:     rand.New(rand.NewSource(1)),
		Now:      func() time.Time { return time.Unix(1700000000, 0) },
	}
}
