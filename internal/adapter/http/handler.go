package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"voidwake/internal/app/command"
	"voidwake/internal/app/game"
	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const playerIDHeader = "X-Player-ID"

var ErrMissingPlayerIDHeader = errors.New("missing x-player-id header")

// GameService is the slice of the game manager the transport needs.
type GameService interface {
	Create(ctx context.Context, playerIDs, playerNames []string) (*ship.Ship, error)
	HandleCommand(ctx context.Context, gameID, playerID, line string) error
	Do(ctx context.Context, gameID string, fn func(ctx context.Context, s *ship.Ship) error) error
	Verdict(ctx context.Context, gameID string) (ship.Verdict, error)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	Games GameService
	KPI   kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	api := s.Group("/api/game")
	api.POST("", h.createGame)
	api.POST("/:id/command", h.postCommand)
	api.GET("/:id/state", h.gameState)

	s.GET("/ops/kpi", h.kpi)
}

type createGameRequest struct {
	Players []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"players"`
}

type createGameResponse struct {
	GameID  string   `json:"game_id"`
	Players []string `json:"players"`
}

func (h Handler) createGame(c context.Context, ctx *app.RequestContext) {
	var body createGameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if len(body.Players) == 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_players", "at least one player is required")
		return
	}
	ids := make([]string, 0, len(body.Players))
	names := make([]string, 0, len(body.Players))
	for _, p := range body.Players {
		if strings.TrimSpace(p.ID) == "" {
			writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", "every player needs an id")
			return
		}
		ids = append(ids, p.ID)
		names = append(names, p.Name)
	}

	s, err := h.Games.Create(c, ids, names)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, createGameResponse{GameID: s.ID, Players: ids})
}

type commandRequest struct {
	Line string `json:"line"`
}

func (h Handler) postCommand(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body commandRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	gameID := string(ctx.Param("id"))
	if err := h.Games.HandleCommand(c, gameID, playerID, body.Line); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]string{"status": "accepted"})
}

// droneView deliberately omits the role: the saboteur stays hidden from every
// surface fosters can reach.
type droneView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Room    string `json:"room"`
	Battery int    `json:"battery"`
	Status  string `json:"status"`
}

type playerView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Alive          bool   `json:"alive"`
	RequestedSleep bool   `json:"requested_sleep"`
	DroneID        string `json:"drone_id"`
}

type eventView struct {
	Hour    int    `json:"hour"`
	Message string `json:"message"`
}

type stateResponse struct {
	GameID  string       `json:"game_id"`
	Phase   string       `json:"phase"`
	Cycle   int          `json:"cycle"`
	Oxygen  int          `json:"oxygen"`
	Fuel    int          `json:"fuel"`
	Verdict string       `json:"verdict,omitempty"`
	Drones  []droneView  `json:"drones"`
	Players []playerView `json:"players"`
	DayLog  []eventView  `json:"day_log"`
}

func (h Handler) gameState(c context.Context, ctx *app.RequestContext) {
	gameID := string(ctx.Param("id"))

	var resp stateResponse
	err := h.Games.Do(c, gameID, func(_ context.Context, s *ship.Ship) error {
		resp = stateResponse{
			GameID:  s.ID,
			Phase:   string(s.Phase),
			Cycle:   s.Cycle,
			Oxygen:  s.Oxygen,
			Fuel:    s.Fuel,
			Drones:  make([]droneView, 0, len(s.Drones)),
			Players: make([]playerView, 0, len(s.Players)),
			DayLog:  make([]eventView, 0, len(s.DayLog)),
		}
		for _, d := range s.Drones {
			resp.Drones = append(resp.Drones, droneView{
				ID:      d.ID,
				Name:    d.Name,
				Room:    string(d.Room),
				Battery: d.Battery,
				Status:  string(d.Status()),
			})
		}
		for _, p := range s.Players {
			resp.Players = append(resp.Players, playerView{
				ID:             p.ID,
				Name:           p.Name,
				Alive:          p.Alive,
				RequestedSleep: p.RequestedSleep,
				DroneID:        p.DroneID,
			})
		}
		for _, ev := range s.DayLog {
			resp.DayLog = append(resp.DayLog, eventView{Hour: ev.Hour, Message: ev.Message})
		}
		return nil
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	sort.Slice(resp.Drones, func(i, j int) bool { return resp.Drones[i].ID < resp.Drones[j].ID })
	sort.Slice(resp.Players, func(i, j int) bool { return resp.Players[i].ID < resp.Players[j].ID })

	if v, err := h.Games.Verdict(c, gameID); err == nil {
		resp.Verdict = string(v)
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requirePlayer(ctx *app.RequestContext) (string, error) {
	playerID := strings.TrimSpace(string(ctx.GetHeader(playerIDHeader)))
	if playerID == "" {
		return "", ErrMissingPlayerIDHeader
	}
	return playerID, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", err.Error())
	case errors.Is(err, command.ErrSimulationRunning):
		writeErrorBody(ctx, consts.StatusConflict, "simulation_running", err.Error())
	case errors.Is(err, command.ErrNotPermitted):
		writeErrorBody(ctx, consts.StatusForbidden, "not_permitted", err.Error())
	case errors.Is(err, command.ErrUnknownPlayer), errors.Is(err, command.ErrUnknownDrone):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_target", err.Error())
	case errors.Is(err, game.ErrGameOver):
		writeErrorBody(ctx, consts.StatusConflict, "game_over", err.Error())
	case errors.Is(err, game.ErrShuttingDown):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "shutting_down", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
