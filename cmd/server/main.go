package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sqlitearchive "voidwake/internal/adapter/archive/sqlite"
	llmdecider "voidwake/internal/adapter/decider/llm"
	"voidwake/internal/adapter/decider/scripted"
	"voidwake/internal/adapter/dispatch/wshub"
	httpadapter "voidwake/internal/adapter/http"
	metricsinmem "voidwake/internal/adapter/metrics/inmemory"
	gormrepo "voidwake/internal/adapter/repo/gorm"
	memoryrepo "voidwake/internal/adapter/repo/memory"
	"voidwake/internal/adapter/sched"
	"voidwake/internal/app/command"
	"voidwake/internal/app/day"
	"voidwake/internal/app/game"
	"voidwake/internal/app/ports"
	"voidwake/internal/config"
	"voidwake/internal/domain/ship"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	tun, err := config.LoadTuning(strings.TrimSpace(os.Getenv("VOIDWAKE_TUNING_FILE")))
	if err != nil {
		log.Fatalf("load tuning: %v", err)
	}

	games := mustBuildGameRepo()
	hub := wshub.NewHub()
	background := sched.NewBackgrounder()
	kpi := metricsinmem.NewRecorder()
	archive := buildArchive()
	decider := buildDecider(tun)

	runner := day.Runner{
		Decider:  decider,
		Dispatch: hub,
		Games:    games,
		Archive:  archive,
		Metrics:  kpi,
		Tuning:   tun,
		Now:      time.Now,
	}
	processor := command.Processor{Games: games, Dispatch: hub, Tuning: tun}
	if converser, ok := decider.(ports.Converser); ok {
		processor.Chat = converser
	}
	manager := game.NewManager(games, background, runner, processor, tun)

	h := httpadapter.Handler{Games: manager, KPI: kpi}
	s := server.Default(server.WithHostPorts(envOr("VOIDWAKE_HTTP_ADDR", ":8080")))
	h.RegisterRoutes(s)

	wsAddr := envOr("VOIDWAKE_WS_ADDR", ":8081")
	wsServer := &http.Server{Addr: wsAddr, Handler: hub}
	go func() {
		if err := wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("observer feed: %v", err)
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("voidwake shutting down: no new commands, in-flight days run to completion")
		manager.Close()
		background.Close()
		wsServer.Shutdown(context.Background())
		s.Close()
	}()

	log.Printf("voidwake server listening on %s (observer feed on %s)", envOr("VOIDWAKE_HTTP_ADDR", ":8080"), wsAddr)
	s.Spin()
}

func mustBuildGameRepo() ports.GameRepository {
	dsn := strings.TrimSpace(os.Getenv("VOIDWAKE_DB_DSN"))
	if dsn == "" {
		log.Println("VOIDWAKE_DB_DSN not set, using in-memory repository (state is lost on exit)")
		return memoryrepo.NewGameRepo()
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("VOIDWAKE_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return gormrepo.NewGameRepo(db)
}

func buildArchive() ports.GameArchiver {
	path := strings.TrimSpace(os.Getenv("VOIDWAKE_ARCHIVE_PATH"))
	if path == "" {
		return nil
	}
	a, err := sqlitearchive.Open(path)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	return a
}

func buildDecider(tun ship.Tuning) ports.Decider {
	baseURL := strings.TrimSpace(os.Getenv("VOIDWAKE_LLM_BASE_URL"))
	if baseURL == "" {
		log.Println("VOIDWAKE_LLM_BASE_URL not set, using the scripted decider")
		return scripted.New()
	}
	return llmdecider.NewClient(llmdecider.Config{
		BaseURL: baseURL,
		APIKey:  os.Getenv("VOIDWAKE_LLM_API_KEY"),
		Model:   envOr("VOIDWAKE_LLM_MODEL", "gpt-4o-mini"),
	}, tun)
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
