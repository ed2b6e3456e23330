package ship

import "time"

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

type Room string

// The ship has six fixed rooms. The stasis room doubles as the safe room:
// foster pods live there and it is the only place a drone can speak from.
const (
	RoomStasis      Room = "stasis"
	RoomEngine      Room = "engine"
	RoomCharging    Room = "charging"
	RoomTorpedoBay  Room = "torpedo_bay"
	RoomShuttleBay  Room = "shuttle_bay"
	RoomMaintenance Room = "maintenance"
)

func Rooms() []Room {
	return []Room{RoomStasis, RoomEngine, RoomCharging, RoomTorpedoBay, RoomShuttleBay, RoomMaintenance}
}

func ValidRoom(r Room) bool {
	for _, room := range Rooms() {
		if r == room {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleLoyal    Role = "loyal"
	RoleSaboteur Role = "saboteur"
)

type Item string

const (
	ItemFuelCanister Item = "fuel_canister"
	ItemPlasmaTorch  Item = "plasma_torch"
)

type DroneStatus string

const (
	StatusActive    DroneStatus = "active"
	StatusOffline   DroneStatus = "offline"
	StatusDestroyed DroneStatus = "destroyed"
)

type Drone struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	FosterID    string         `json:"foster_id"`
	Room        Room           `json:"room"`
	Battery     int            `json:"battery"`
	Role        Role           `json:"role"`
	Inventory   map[Item]int   `json:"inventory"`
	LongMemory  string         `json:"long_memory"`
	DayMemory   []string       `json:"day_memory,omitempty"`
	Transcript  []ChatLine     `json:"transcript,omitempty"`
	Destroyed   bool           `json:"destroyed"`
	HadActivity bool           `json:"had_activity"`
}

type ChatLine struct {
	From string `json:"from"`
	Text string `json:"text"`
}

type Player struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Alive          bool   `json:"alive"`
	RequestedSleep bool   `json:"requested_sleep"`
	DroneID        string `json:"drone_id"`
	// Role is vestigial: the saboteur twist lives on the drone, never the
	// player, so fosters cannot learn it from their own record.
	Role Role `json:"role"`
}

func (p Player) ReadyForSleep() bool {
	return !p.Alive || p.RequestedSleep
}

// Station is where batteries are restored and queued drones decommissioned.
type Station struct {
	PendingDestroy map[string]bool `json:"pending_destroy,omitempty"`
}

// Event is one entry of the durable public log for the current day.
type Event struct {
	Hour       int       `json:"hour"`
	DroneID    string    `json:"drone_id,omitempty"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Verdict string

const (
	VerdictVictory  Verdict = "VICTORY"
	VerdictFailure  Verdict = "FAILURE"
	VerdictContinue Verdict = "CONTINUE"
)

// Ship is the aggregate game state. Oxygen and Fuel are only written through
// ConsumeOxygen and AddFuel so the clamps cannot be bypassed.
type Ship struct {
	ID             string             `json:"id"`
	Oxygen         int                `json:"oxygen"`
	Fuel           int                `json:"fuel"`
	ShuttleBayFuel int                `json:"shuttle_bay_fuel"`
	TorpedoBayFuel int                `json:"torpedo_bay_fuel"`
	Cycle          int                `json:"cycle"`
	Phase          Phase              `json:"phase"`
	Drones         map[string]*Drone  `json:"drones"`
	Players        map[string]*Player `json:"players"`
	Station        Station            `json:"station"`
	DayLog         []Event            `json:"day_log,omitempty"`
	Version        int64              `json:"version"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
