package ports

import "context"

// DecisionQuery is the world-state snapshot scoped to one drone, handed to
// the model when it is that drone's turn to act.
type DecisionQuery struct {
	GameID        string         `json:"game_id"`
	DroneID       string         `json:"drone_id"`
	DroneName     string         `json:"drone_name"`
	Role          string         `json:"role"`
	Room          string         `json:"room"`
	Battery       int            `json:"battery"`
	Inventory     map[string]int `json:"inventory"`
	Colocated     []string       `json:"colocated"`
	LongMemory    string         `json:"long_memory"`
	DayMemory     []string       `json:"day_memory"`
	Hour          int            `json:"hour"`
	HoursPerShift int            `json:"hours_per_shift"`
}

// MemoryQuery asks for a consolidation of one drone's day into its carried
// long-term memory.
type MemoryQuery struct {
	GameID     string   `json:"game_id"`
	DroneID    string   `json:"drone_id"`
	DroneName  string   `json:"drone_name"`
	LongMemory string   `json:"long_memory"`
	DayMemory  []string `json:"day_memory"`
	Transcript []string `json:"transcript"`
}

type NarrationKind string

const (
	NarrateIntroduction NarrationKind = "introduction"
	NarrateNightReport  NarrationKind = "night_report"
	NarrateEpilogue     NarrationKind = "epilogue"
)

type NarrationQuery struct {
	Kind       NarrationKind `json:"kind"`
	GameID     string        `json:"game_id"`
	DroneID    string        `json:"drone_id"`
	DroneName  string        `json:"drone_name"`
	Role       string        `json:"role"`
	LongMemory string        `json:"long_memory"`
	Verdict    string        `json:"verdict,omitempty"`
}

// ChatQuery carries one night-chat line from a foster to a speech-capable
// drone, with the running conversation for context.
type ChatQuery struct {
	GameID     string   `json:"game_id"`
	DroneID    string   `json:"drone_id"`
	DroneName  string   `json:"drone_name"`
	Role       string   `json:"role"`
	LongMemory string   `json:"long_memory"`
	Transcript []string `json:"transcript"`
	PlayerName string   `json:"player_name"`
	Line       string   `json:"line"`
}

// Decider is the language-model collaborator. DecideAction returns the raw
// structured reply; parsing and wait-degradation happen on our side so a
// misbehaving model can never throw into the scheduler.
type Decider interface {
	DecideAction(ctx context.Context, q DecisionQuery) (string, error)
	Consolidate(ctx context.Context, q MemoryQuery) (string, error)
	Narrate(ctx context.Context, q NarrationQuery) (string, error)
}

// Converser produces in-character drone replies to night chat. Kept separate
// from Decider so a processor without a conversational backend can still run
// directives.
type Converser interface {
	Converse(ctx context.Context, q ChatQuery) (string, error)
}
