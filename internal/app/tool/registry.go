package tool

import (
	"voidwake/internal/domain/ship"
)

type Kind string

const (
	KindMove            Kind = "move"
	KindGather          Kind = "gather"
	KindDeposit         Kind = "deposit"
	KindCharge          Kind = "charge"
	KindTow             Kind = "tow"
	KindDrain           Kind = "drain"
	KindVent            Kind = "vent"
	KindSiphon          Kind = "siphon"
	KindSearch          Kind = "search"
	KindIncinerateDrone Kind = "incinerate_drone"
	KindIncineratePod   Kind = "incinerate_pod"
	KindDetonate        Kind = "detonate"
	KindWait            Kind = "wait"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityRoom    Visibility = "room"
	VisibilityGlobal  Visibility = "global"
)

// Args is the structured argument map a decision may carry. Every tool reads
// at most these two fields.
type Args struct {
	Destination ship.Room `json:"destination,omitempty"`
	TargetID    string    `json:"target_id,omitempty"`
}

// Outcome is the structured result of one executed tool, folded into drone
// memories and the public log by the scheduler.
type Outcome struct {
	Tool       Kind       `json:"tool"`
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Cost       int        `json:"cost"`
	Visibility Visibility `json:"visibility"`
}

type handler interface {
	execute(t *turn) Outcome
}

// registry is the closed dispatch table: one handler per tool kind. Adding a
// tool means adding a Kind constant and a handler here, nothing is looked up
// by loose string matching at execution time.
func registry() map[Kind]handler {
	return map[Kind]handler{
		KindMove:            moveHandler{},
		KindGather:          gatherHandler{},
		KindDeposit:         depositHandler{},
		KindCharge:          chargeHandler{},
		KindTow:             towHandler{},
		KindDrain:           drainHandler{},
		KindVent:            ventHandler{},
		KindSiphon:          siphonHandler{},
		KindSearch:          searchHandler{},
		KindIncinerateDrone: incinerateDroneHandler{},
		KindIncineratePod:   incineratePodHandler{},
		KindDetonate:        detonateHandler{},
		KindWait:            waitHandler{},
	}
}

func Kinds() []Kind {
	return []Kind{
		KindMove, KindGather, KindDeposit, KindCharge, KindTow, KindDrain,
		KindVent, KindSiphon, KindSearch, KindIncinerateDrone,
		KindIncineratePod, KindDetonate, KindWait,
	}
}

func Known(k Kind) bool {
	_, ok := registry()[k]
	return ok
}
