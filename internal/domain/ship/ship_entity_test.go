package ship

import "testing"

func TestConsumeOxygenClampsAtZero(t *testing.T) {
	s := Ship{Oxygen: 15}
	s.ConsumeOxygen(10)
	if s.Oxygen != 5 {
		t.Fatalf("expected oxygen=5, got %d", s.Oxygen)
	}
	s.ConsumeOxygen(10)
	if s.Oxygen != 0 {
		t.Fatalf("expected oxygen clamped at 0, got %d", s.Oxygen)
	}
	s.ConsumeOxygen(-5)
	if s.Oxygen != 0 {
		t.Fatalf("negative amounts must be ignored, got %d", s.Oxygen)
	}
}

func TestAddFuelClampsAtCap(t *testing.T) {
	s := Ship{Fuel: 95}
	s.AddFuel(3)
	if s.Fuel != 98 {
		t.Fatalf("expected fuel=98, got %d", s.Fuel)
	}
	s.AddFuel(10)
	if s.Fuel != FuelCap {
		t.Fatalf("expected fuel clamped at %d, got %d", FuelCap, s.Fuel)
	}
}

func TestDroneStatusOrdering(t *testing.T) {
	d := Drone{Battery: 50}
	if d.Status() != StatusActive {
		t.Fatalf("expected active, got %s", d.Status())
	}
	d.Battery = 0
	if d.Status() != StatusOffline {
		t.Fatalf("expected offline, got %s", d.Status())
	}
	d.Destroyed = true
	if d.Status() != StatusDestroyed {
		t.Fatalf("destroyed must win over offline, got %s", d.Status())
	}
}

func TestDroneCanSpeakOnlyActiveInStasis(t *testing.T) {
	d := Drone{Battery: 50, Room: RoomStasis}
	if !d.CanSpeak() {
		t.Fatalf("expected speech-capable drone")
	}
	d.Room = RoomEngine
	if d.CanSpeak() {
		t.Fatalf("drone outside stasis must not speak")
	}
	d.Room = RoomStasis
	d.Battery = 0
	if d.CanSpeak() {
		t.Fatalf("offline drone must not speak")
	}
}

func TestDroneInventoryOps(t *testing.T) {
	d := Drone{}
	d.AddItem(ItemFuelCanister, 2)
	if d.Inventory[ItemFuelCanister] != 2 {
		t.Fatalf("expected 2 canisters, got %d", d.Inventory[ItemFuelCanister])
	}
	if ok := d.ConsumeItem(ItemFuelCanister, 3); ok {
		t.Fatalf("expected consume failure when insufficient")
	}
	if ok := d.ConsumeItem(ItemFuelCanister, 2); !ok {
		t.Fatalf("expected consume success")
	}
	if d.HasItem(ItemFuelCanister) {
		t.Fatalf("expected empty inventory")
	}
}

func TestBatteryClamps(t *testing.T) {
	d := Drone{Battery: 10}
	d.SpendBattery(25)
	if d.Battery != 0 {
		t.Fatalf("expected battery clamped at 0, got %d", d.Battery)
	}
	d.ChargeBattery(150)
	if d.Battery != BatteryMax {
		t.Fatalf("expected battery clamped at %d, got %d", BatteryMax, d.Battery)
	}
}

func TestDayReadyConsensus(t *testing.T) {
	s := Ship{
		Oxygen: 80,
		Players: map[string]*Player{
			"p1": {ID: "p1", Alive: true},
			"p2": {ID: "p2", Alive: true},
		},
	}
	if s.DayReady() {
		t.Fatalf("no one requested sleep, day must not be ready")
	}
	s.Players["p1"].RequestedSleep = true
	if s.DayReady() {
		t.Fatalf("one of two requesting must not flip consensus")
	}
	s.Players["p2"].Alive = false
	if !s.DayReady() {
		t.Fatalf("one requesting plus one dead must be ready")
	}
	s.Players["p2"].Alive = true
	s.Players["p2"].RequestedSleep = true
	if !s.DayReady() {
		t.Fatalf("both requesting must be ready")
	}
}

func TestDayReadyOnOxygenExhaustion(t *testing.T) {
	s := Ship{
		Oxygen:  0,
		Players: map[string]*Player{"p1": {ID: "p1", Alive: true}},
	}
	if !s.DayReady() {
		t.Fatalf("depleted oxygen must force day readiness")
	}
}

func TestDestructionQueue(t *testing.T) {
	s := Ship{}
	s.QueueDestruction("drone-1")
	if !s.DestructionQueued("drone-1") {
		t.Fatalf("expected drone queued")
	}
	s.AbortDestruction("drone-1")
	if s.DestructionQueued("drone-1") {
		t.Fatalf("expected queue entry removed")
	}
}

func TestDronesInRoomExcludesDestroyedAndSelf(t *testing.T) {
	s := Ship{Drones: map[string]*Drone{
		"a": {ID: "a", Room: RoomEngine, Battery: 50},
		"b": {ID: "b", Room: RoomEngine, Battery: 0},
		"c": {ID: "c", Room: RoomEngine, Destroyed: true},
		"d": {ID: "d", Room: RoomStasis, Battery: 50},
	}}
	got := s.DronesInRoom(RoomEngine, "a")
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only offline drone b as witness candidate, got %d", len(got))
	}
}
