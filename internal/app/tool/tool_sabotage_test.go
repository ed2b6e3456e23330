package tool

import (
	"testing"

	"voidwake/internal/domain/ship"
)

func TestVentReducesOxygen(t *testing.T) {
	s := testShip()
	tun := ship.DefaultTuning()
	d := s.Drones["d2"]
	d.Battery = 100

	out := mustExecute(s, KindVent, Args{}, "d2", tun)
	if !out.Success || out.Visibility != VisibilityGlobal {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if s.Oxygen != ship.OxygenMax-tun.VentOxygenLoss {
		t.Fatalf("expected oxygen %d, got %d", ship.OxygenMax-tun.VentOxygenLoss, s.Oxygen)
	}
	if d.Battery != 100-tun.VentCost {
		t.Fatalf("vent must cost %d battery, got %d left", tun.VentCost, d.Battery)
	}
}

func TestVentClampsOxygenAtZero(t *testing.T) {
	s := testShip()
	s.Oxygen = 3
	mustExecute(s, KindVent, Args{}, "d2", ship.DefaultTuning())
	if s.Oxygen != 0 {
		t.Fatalf("oxygen must clamp at 0, got %d", s.Oxygen)
	}
}

func TestDetonateBlastsTheBayAndReportsSuccess(t *testing.T) {
	s := testShip()
	s.Drones["d1"].Room = ship.RoomTorpedoBay
	s.Drones["d2"].Room = ship.RoomTorpedoBay

	out := mustExecute(s, KindDetonate, Args{}, "d2", ship.DefaultTuning())
	if !out.Success {
		t.Fatalf("detonate is a deliberate act and must report success")
	}
	if out.Visibility != VisibilityGlobal {
		t.Fatalf("detonate must be globally visible")
	}
	if s.Drones["d1"].Battery != 0 || s.Drones["d2"].Battery != 0 {
		t.Fatalf("blast must zero every drone in the bay")
	}
}

func TestDetonateRequiresTorpedoBay(t *testing.T) {
	s := testShip()
	out := mustExecute(s, KindDetonate, Args{}, "d2", ship.DefaultTuning())
	if out.Success {
		t.Fatalf("detonate must fail outside the torpedo bay")
	}
}

func TestIncinerateDroneConsumesTorch(t *testing.T) {
	s := testShip()
	tun := ship.DefaultTuning()
	actor := s.Drones["d2"]
	target := s.Drones["d1"]
	actor.Room = ship.RoomMaintenance
	target.Room = ship.RoomMaintenance
	actor.AddItem(ship.ItemPlasmaTorch, 1)

	out := mustExecute(s, KindIncinerateDrone, Args{TargetID: "d1"}, "d2", tun)
	if !out.Success || out.Visibility != VisibilityRoom {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if !target.Destroyed {
		t.Fatalf("target drone must be destroyed")
	}
	if actor.HasItem(ship.ItemPlasmaTorch) {
		t.Fatalf("torch must be consumed")
	}
	if actor.Battery != 100-tun.IncinerateCost {
		t.Fatalf("expected battery %d, got %d", 100-tun.IncinerateCost, actor.Battery)
	}
}

func TestIncinerateDroneRequiresTorch(t *testing.T) {
	s := testShip()
	out := mustExecute(s, KindIncinerateDrone, Args{TargetID: "d1"}, "d2", ship.DefaultTuning())
	if out.Success {
		t.Fatalf("incinerate must fail without a torch")
	}
	if s.Drones["d1"].Destroyed {
		t.Fatalf("target must be untouched")
	}
}

func TestIncinerateDroneShelteredInStasis(t *testing.T) {
	s := testShip()
	actor := s.Drones["d2"]
	actor.AddItem(ship.ItemPlasmaTorch, 1)

	// Both drones sit at their pods; the shielding holds.
	out := mustExecute(s, KindIncinerateDrone, Args{TargetID: "d1"}, "d2", ship.DefaultTuning())
	if out.Success {
		t.Fatalf("drone at its pod must be untouchable")
	}
	if s.Drones["d1"].Destroyed {
		t.Fatalf("sheltered target was destroyed")
	}
	if !actor.HasItem(ship.ItemPlasmaTorch) {
		t.Fatalf("torch must not be consumed on failure")
	}
}

func TestIncineratePodKillsPlayer(t *testing.T) {
	s := testShip()
	actor := s.Drones["d2"]
	actor.AddItem(ship.ItemPlasmaTorch, 1)

	out := mustExecute(s, KindIncineratePod, Args{TargetID: "p1"}, "d2", ship.DefaultTuning())
	if !out.Success || out.Visibility != VisibilityGlobal {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if s.Players["p1"].Alive {
		t.Fatalf("pod occupant must be dead")
	}
	if actor.HasItem(ship.ItemPlasmaTorch) {
		t.Fatalf("torch must be consumed")
	}
}

func TestIncineratePodOnlyFromStasis(t *testing.T) {
	s := testShip()
	actor := s.Drones["d2"]
	actor.AddItem(ship.ItemPlasmaTorch, 1)
	actor.Room = ship.RoomEngine

	out := mustExecute(s, KindIncineratePod, Args{TargetID: "p1"}, "d2", ship.DefaultTuning())
	if out.Success {
		t.Fatalf("incinerate_pod must fail outside stasis")
	}
	if !s.Players["p1"].Alive {
		t.Fatalf("player must be untouched")
	}
	if !actor.HasItem(ship.ItemPlasmaTorch) {
		t.Fatalf("torch must not be consumed on failure")
	}
}

func TestSearchFindsTorch(t *testing.T) {
	s := testShip()
	tun := ship.DefaultTuning()
	tun.TorchFindChance = 1.0
	s.Drones["d1"].Room = ship.RoomMaintenance

	out := mustExecute(s, KindSearch, Args{}, "d1", tun)
	if !out.Success || out.Visibility != VisibilityPrivate {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if !s.Drones["d1"].HasItem(ship.ItemPlasmaTorch) {
		t.Fatalf("expected a torch in inventory")
	}
}

func TestSearchComesUpEmptyStaysPrivate(t *testing.T) {
	s := testShip()
	tun := ship.DefaultTuning()
	tun.TorchFindChance = 0.0
	s.Drones["d1"].Room = ship.RoomMaintenance

	out := mustExecute(s, KindSearch, Args{}, "d1", tun)
	if out.Success {
		t.Fatalf("empty search reports no find")
	}
	if out.Visibility != VisibilityPrivate {
		t.Fatalf("search must stay private either way")
	}
}

func TestSearchRefusesSecondTorch(t *testing.T) {
	s := testShip()
	tun := ship.DefaultTuning()
	tun.TorchFindChance = 1.0
	d := s.Drones["d1"]
	d.Room = ship.RoomMaintenance
	d.AddItem(ship.ItemPlasmaTorch, 1)

	out := mustExecute(s, KindSearch, Args{}, "d1", tun)
	if out.Success {
		t.Fatalf("search must fail when a torch is already held")
	}
	if d.Inventory[ship.ItemPlasmaTorch] != 1 {
		t.Fatalf("inventory must be unchanged")
	}
}
