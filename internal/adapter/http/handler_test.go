package httpadapter

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"voidwake/internal/app/command"
	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"
)

type fakeGameService struct {
	created  *ship.Ship
	ship     *ship.Ship
	verdict  ship.Verdict
	cmdErr   error
	commands []string
}

func (f *fakeGameService) Create(_ context.Context, playerIDs, playerNames []string) (*ship.Ship, error) {
	if f.created == nil {
		return nil, ports.ErrConflict
	}
	return f.created, nil
}

func (f *fakeGameService) HandleCommand(_ context.Context, gameID, playerID, line string) error {
	f.commands = append(f.commands, playerID+" "+line)
	return f.cmdErr
}

func (f *fakeGameService) Do(_ context.Context, gameID string, fn func(ctx context.Context, s *ship.Ship) error) error {
	if f.ship == nil || f.ship.ID != gameID {
		return ports.ErrNotFound
	}
	return fn(context.Background(), f.ship)
}

func (f *fakeGameService) Verdict(_ context.Context, _ string) (ship.Verdict, error) {
	return f.verdict, nil
}

func requestWithBody(t *testing.T, body any) *app.RequestContext {
	t.Helper()
	ctx := &app.RequestContext{}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		ctx.Request.SetBody(raw)
	}
	return ctx
}

func TestCreateGame(t *testing.T) {
	svc := &fakeGameService{created: &ship.Ship{ID: "g1"}}
	h := Handler{Games: svc}

	ctx := requestWithBody(t, map[string]any{
		"players": []map[string]string{{"id": "p1", "name": "Ada"}, {"id": "p2", "name": "Ben"}},
	})
	h.createGame(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusCreated {
		t.Fatalf("status = %d, want %d", got, consts.StatusCreated)
	}
	var resp createGameResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.GameID != "g1" || len(resp.Players) != 2 {
		t.Fatalf("response = %+v", resp)
	}
}

func TestCreateGameRequiresPlayers(t *testing.T) {
	h := Handler{Games: &fakeGameService{created: &ship.Ship{ID: "g1"}}}

	ctx := requestWithBody(t, map[string]any{"players": []map[string]string{}})
	h.createGame(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("status = %d, want %d", got, consts.StatusBadRequest)
	}
}

func TestPostCommandRequiresPlayerHeader(t *testing.T) {
	h := Handler{Games: &fakeGameService{}}
	ctx := requestWithBody(t, map[string]string{"line": "!sleep"})

	h.postCommand(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("status = %d, want %d", got, consts.StatusBadRequest)
	}
}

func TestPostCommandForwardsToManager(t *testing.T) {
	svc := &fakeGameService{}
	h := Handler{Games: svc}

	ctx := requestWithBody(t, map[string]string{"line": "!destroy d2"})
	ctx.Request.Header.Set(playerIDHeader, "p1")
	ctx.Params = param.Params{{Key: "id", Value: "g1"}}

	h.postCommand(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status = %d, want %d", got, consts.StatusOK)
	}
	if len(svc.commands) != 1 || svc.commands[0] != "p1 !destroy d2" {
		t.Fatalf("forwarded commands = %v", svc.commands)
	}
}

func TestPostCommandDuringDayConflicts(t *testing.T) {
	svc := &fakeGameService{cmdErr: command.ErrSimulationRunning}
	h := Handler{Games: svc}

	ctx := requestWithBody(t, map[string]string{"line": "!sleep"})
	ctx.Request.Header.Set(playerIDHeader, "p1")
	ctx.Params = param.Params{{Key: "id", Value: "g1"}}

	h.postCommand(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusConflict {
		t.Fatalf("status = %d, want %d", got, consts.StatusConflict)
	}
}

func TestGameStateRedactsRoles(t *testing.T) {
	s := &ship.Ship{
		ID:     "g1",
		Oxygen: 80,
		Fuel:   10,
		Cycle:  2,
		Phase:  ship.PhaseNight,
		Drones: map[string]*ship.Drone{
			"d1": {ID: "d1", Name: "Unit-1", Room: ship.RoomStasis, Battery: 84, Role: ship.RoleSaboteur},
		},
		Players: map[string]*ship.Player{
			"p1": {ID: "p1", Name: "Ada", Alive: true, DroneID: "d1"},
		},
		DayLog: []ship.Event{{Hour: 3, Message: "the air got thinner"}},
	}
	h := Handler{Games: &fakeGameService{ship: s}}

	ctx := &app.RequestContext{}
	ctx.Params = param.Params{{Key: "id", Value: "g1"}}
	h.gameState(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status = %d", got)
	}
	body := ctx.Response.Body()
	var resp stateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Oxygen != 80 || resp.Cycle != 2 || len(resp.Drones) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	var loose map[string]any
	if err := json.Unmarshal(body, &loose); err != nil {
		t.Fatalf("decode loose: %v", err)
	}
	raw, _ := json.Marshal(loose["drones"])
	if strings.Contains(string(raw), "role") || strings.Contains(string(raw), "saboteur") {
		t.Fatalf("drone role leaked: %s", raw)
	}
}

func TestGameStateUnknownGame(t *testing.T) {
	h := Handler{Games: &fakeGameService{}}
	ctx := &app.RequestContext{}
	ctx.Params = param.Params{{Key: "id", Value: "nope"}}

	h.gameState(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("status = %d, want %d", got, consts.StatusNotFound)
	}
}

func TestKPIWithoutProvider(t *testing.T) {
	h := Handler{Games: &fakeGameService{}}
	ctx := &app.RequestContext{}

	h.kpi(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("status = %d, want %d", got, consts.StatusNotFound)
	}
}
