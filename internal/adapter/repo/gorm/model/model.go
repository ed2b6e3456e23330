package model

import "time"

// Game is the games table row: ship-wide resources plus the optimistic
// concurrency version.
type Game struct {
	ID             string `gorm:"column:id;primaryKey"`
	Oxygen         int32  `gorm:"column:oxygen"`
	Fuel           int32  `gorm:"column:fuel"`
	ShuttleBayFuel int32  `gorm:"column:shuttle_bay_fuel"`
	TorpedoBayFuel int32  `gorm:"column:torpedo_bay_fuel"`
	Cycle          int32  `gorm:"column:cycle"`
	Phase          string `gorm:"column:phase"`
	Version        int64  `gorm:"column:version"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Game) TableName() string { return "games" }

// Drone keys on (game_id, id): drone ids derive from player ids and repeat
// across games. Inventory and the memory logs are jsonb blobs; they are
// only ever read and written whole.
type Drone struct {
	GameID         string `gorm:"column:game_id;primaryKey"`
	ID             string `gorm:"column:id;primaryKey"`
	Name           string `gorm:"column:name"`
	FosterID       string `gorm:"column:foster_id"`
	Room           string `gorm:"column:room"`
	Battery        int32  `gorm:"column:battery"`
	Role           string `gorm:"column:role"`
	Inventory      []byte `gorm:"column:inventory"`
	LongMemory     string `gorm:"column:long_memory"`
	DayMemory      []byte `gorm:"column:day_memory"`
	Transcript     []byte `gorm:"column:transcript"`
	Destroyed      bool   `gorm:"column:destroyed"`
	HadActivity    bool   `gorm:"column:had_activity"`
	PendingDestroy bool   `gorm:"column:pending_destroy"`
}

func (Drone) TableName() string { return "drones" }

type Player struct {
	GameID         string `gorm:"column:game_id;primaryKey"`
	ID             string `gorm:"column:id;primaryKey"`
	Name           string `gorm:"column:name"`
	Alive          bool   `gorm:"column:alive"`
	RequestedSleep bool   `gorm:"column:requested_sleep"`
	DroneID        string `gorm:"column:drone_id"`
}

func (Player) TableName() string { return "players" }
