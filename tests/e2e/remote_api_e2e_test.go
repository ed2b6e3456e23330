//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// Exercises a deployed server end to end: create a game, issue night
// commands, read the redacted state, and check the KPI surface. Run with
// -tags e2e and E2E_BASE_URL pointing at a live instance.
func TestRemoteAPI_GameLifecycle(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	var gameID string

	t.Run("create game", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game", "", map[string]any{
			"players": []map[string]string{
				{"id": "e2e-p1", "name": "Ada"},
				{"id": "e2e-p2", "name": "Ben"},
			},
		})
		if status != http.StatusCreated {
			t.Fatalf("create status=%d body=%s", status, string(body))
		}
		var resp struct {
			GameID string `json:"game_id"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal create response: %v body=%s", err, string(body))
		}
		if resp.GameID == "" {
			t.Fatalf("empty game id: %s", string(body))
		}
		gameID = resp.GameID
	})

	t.Run("command requires player header", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/"+gameID+"/command", "", map[string]string{"line": "!sleep"})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("rename drone", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/"+gameID+"/command", "e2e-p1", map[string]string{"line": "!name Rusty"})
		if status != http.StatusOK {
			t.Fatalf("rename status=%d body=%s", status, string(body))
		}
	})

	t.Run("state is redacted", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/game/"+gameID+"/state", "", nil)
		if err != nil {
			t.Fatalf("state request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("state status=%d body=%s", status, string(body))
		}
		if strings.Contains(string(body), "saboteur") {
			t.Fatalf("role leaked in state: %s", string(body))
		}
		var state struct {
			Phase  string `json:"phase"`
			Oxygen int    `json:"oxygen"`
			Drones []struct {
				Name string `json:"name"`
			} `json:"drones"`
		}
		if err := json.Unmarshal(body, &state); err != nil {
			t.Fatalf("unmarshal state: %v body=%s", err, string(body))
		}
		if state.Phase != "night" || state.Oxygen != 100 || len(state.Drones) != 2 {
			t.Fatalf("unexpected fresh game state: %s", string(body))
		}
	})

	t.Run("ops kpi", func(t *testing.T) {
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", "", nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
		var kpi map[string]any
		if err := json.Unmarshal(body, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(body))
		}
		if _, ok := kpi["turns_total"]; !ok {
			t.Fatalf("kpi missing turns_total: %s", string(body))
		}
	})
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func doRequest(client *http.Client, method, url, playerID string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, err
}

func mustJSON(t *testing.T, client *http.Client, method, url, playerID string, payload any) (int, []byte) {
	t.Helper()
	status, body, err := doRequest(client, method, url, playerID, payload)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, body
}
