package main

import (
	"testing"

	"voidwake/internal/adapter/decider/scripted"
	"voidwake/internal/domain/ship"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("VOIDWAKE_HTTP_ADDR", "")
	if got := envOr("VOIDWAKE_HTTP_ADDR", ":8080"); got != ":8080" {
		t.Fatalf("envOr fallback = %q", got)
	}
	t.Setenv("VOIDWAKE_HTTP_ADDR", " :9000 ")
	if got := envOr("VOIDWAKE_HTTP_ADDR", ":8080"); got != ":9000" {
		t.Fatalf("envOr = %q, want trimmed value", got)
	}
}

func TestBuildDeciderDefaultsToScripted(t *testing.T) {
	t.Setenv("VOIDWAKE_LLM_BASE_URL", "")
	d := buildDecider(ship.DefaultTuning())
	if _, ok := d.(scripted.Decider); !ok {
		t.Fatalf("decider = %T, want scripted", d)
	}
}
