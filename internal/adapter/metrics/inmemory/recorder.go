package inmemory

import (
	"sync"

	"voidwake/internal/domain/ship"
)

type Snapshot struct {
	DaysTotal         uint64            `json:"days_total"`
	DaysByVerdict     map[string]uint64 `json:"days_by_verdict"`
	TurnsTotal        uint64            `json:"turns_total"`
	TurnsFailed       uint64            `json:"turns_failed"`
	TurnsByTool       map[string]uint64 `json:"turns_by_tool"`
	DegradedDecisions uint64            `json:"degraded_decisions"`
	SaveConflicts     uint64            `json:"save_conflicts"`
}

// Recorder counts simulation KPIs for /ops/kpi.
type Recorder struct {
	mu        sync.Mutex
	byVerdict map[string]uint64
	byTool    map[string]uint64
	turns     uint64
	failed    uint64
	degraded  uint64
	conflicts uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byVerdict: map[string]uint64{},
		byTool:    map[string]uint64{},
	}
}

func (r *Recorder) RecordDay(verdict ship.Verdict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byVerdict[string(verdict)]++
}

func (r *Recorder) RecordTurn(tool string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns++
	r.byTool[tool]++
	if !success {
		r.failed++
	}
}

func (r *Recorder) RecordDegradedDecision() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded++
}

func (r *Recorder) RecordSaveConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TurnsTotal:        r.turns,
		TurnsFailed:       r.failed,
		DegradedDecisions: r.degraded,
		SaveConflicts:     r.conflicts,
		DaysByVerdict:     make(map[string]uint64, len(r.byVerdict)),
		TurnsByTool:       make(map[string]uint64, len(r.byTool)),
	}
	for k, v := range r.byVerdict {
		out.DaysByVerdict[k] = v
		out.DaysTotal += v
	}
	for k, v := range r.byTool {
		out.TurnsByTool[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
