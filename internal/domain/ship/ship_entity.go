package ship

// ConsumeOxygen is the only writer that lowers oxygen. Clamps at 0.
func (s *Ship) ConsumeOxygen(amount int) {
	if amount <= 0 {
		return
	}
	s.Oxygen -= amount
	if s.Oxygen < 0 {
		s.Oxygen = 0
	}
}

// AddFuel is the only writer that raises ship fuel. Clamps at FuelCap.
func (s *Ship) AddFuel(amount int) {
	if amount <= 0 {
		return
	}
	s.Fuel += amount
	if s.Fuel > FuelCap {
		s.Fuel = FuelCap
	}
}

// DrainFuel removes amount from ship fuel, refusing to go below zero.
func (s *Ship) DrainFuel(amount int) bool {
	if amount <= 0 || s.Fuel < amount {
		return false
	}
	s.Fuel -= amount
	return true
}

func (s *Ship) LivingPlayers() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

// DayReady reports whether the night phase may end: oxygen exhausted, or
// every player is dead or has requested sleep.
func (s *Ship) DayReady() bool {
	if s.Oxygen <= 0 {
		return true
	}
	for _, p := range s.Players {
		if !p.ReadyForSleep() {
			return false
		}
	}
	return true
}

func (s *Ship) ResetSleepRequests() {
	for _, p := range s.Players {
		p.RequestedSleep = false
	}
}

func (s *Ship) ActiveDrones() []*Drone {
	out := make([]*Drone, 0, len(s.Drones))
	for _, d := range s.Drones {
		if d.Status() == StatusActive {
			out = append(out, d)
		}
	}
	return out
}

// DronesInRoom returns the drones currently in room, excluding exceptID.
// Destroyed drones do not count as present.
func (s *Ship) DronesInRoom(room Room, exceptID string) []*Drone {
	out := make([]*Drone, 0, len(s.Drones))
	for _, d := range s.Drones {
		if d.ID == exceptID || d.Destroyed || d.Room != room {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (s *Ship) QueueDestruction(droneID string) {
	if s.Station.PendingDestroy == nil {
		s.Station.PendingDestroy = map[string]bool{}
	}
	s.Station.PendingDestroy[droneID] = true
}

func (s *Ship) AbortDestruction(droneID string) {
	delete(s.Station.PendingDestroy, droneID)
}

func (s *Ship) DestructionQueued(droneID string) bool {
	return s.Station.PendingDestroy[droneID]
}

func (d *Drone) Status() DroneStatus {
	switch {
	case d.Destroyed:
		return StatusDestroyed
	case d.Battery <= 0:
		return StatusOffline
	default:
		return StatusActive
	}
}

// CanSpeak reports whether the drone may talk to its foster: it must be
// active and physically in the stasis room where the pods are.
func (d *Drone) CanSpeak() bool {
	return d.Status() == StatusActive && d.Room == RoomStasis
}

func (d *Drone) AddItem(item Item, amount int) {
	if amount <= 0 || item == "" {
		return
	}
	if d.Inventory == nil {
		d.Inventory = map[Item]int{}
	}
	d.Inventory[item] += amount
}

func (d *Drone) ConsumeItem(item Item, amount int) bool {
	if amount <= 0 || item == "" || d.Inventory == nil {
		return false
	}
	current := d.Inventory[item]
	if current < amount {
		return false
	}
	d.Inventory[item] = current - amount
	return true
}

func (d *Drone) HasItem(item Item) bool {
	return d.Inventory[item] > 0
}

// SpendBattery lowers battery by cost, clamped at 0.
func (d *Drone) SpendBattery(cost int) {
	if cost <= 0 {
		return
	}
	d.Battery -= cost
	if d.Battery < 0 {
		d.Battery = 0
	}
}

// ChargeBattery raises battery by amount, clamped at BatteryMax.
func (d *Drone) ChargeBattery(amount int) {
	if amount <= 0 {
		return
	}
	d.Battery += amount
	if d.Battery > BatteryMax {
		d.Battery = BatteryMax
	}
}

func (d *Drone) Remember(entry string) {
	if entry == "" {
		return
	}
	d.DayMemory = append(d.DayMemory, entry)
	d.HadActivity = true
}

func (d *Drone) ClearDay() {
	d.DayMemory = nil
	d.Transcript = nil
	d.HadActivity = false
}
