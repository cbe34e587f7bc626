package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/love-arena/internal/config"
	"github.com/zhouzirui/love-arena/internal/handler"
	"github.com/zhouzirui/love-arena/internal/handler/events"
	"github.com/zhouzirui/love-arena/internal/service/flavor"
	gameservice "github.com/zhouzirui/love-arena/internal/service/game"
	"github.com/zhouzirui/love-arena/internal/service/leaderboard"
	"github.com/zhouzirui/love-arena/internal/service/ledger"
	sessionservice "github.com/zhouzirui/love-arena/internal/service/session"
	"github.com/zhouzirui/love-arena/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	couplesStore, err := storage.Open(filepath.Join(cfg.Storage.DataDir, "couples.json"))
	if err != nil {
		log.Fatalf("failed to open couples storage: %v", err)
	}
	boardStore, err := storage.Open(filepath.Join(cfg.Storage.DataDir, "leaderboard.json"))
	if err != nil {
		log.Fatalf("failed to open leaderboard storage: %v", err)
	}

	// Flavor lines come from the Ark model when configured, otherwise
	// from the curated pools.
	flavorSvc, err := flavor.NewService(ctx, cfg.AI)
	if err != nil {
		log.Printf("warning: failed to initialize flavor model: %v", err)
		log.Println("continuing with pool flavor lines only - 请检查 Ark 模型相关环境变量")
		flavorSvc, _ = flavor.NewService(ctx, config.AIConfig{})
	} else if flavorSvc.Generated() {
		log.Println("Flavor model initialized successfully")
	} else {
		log.Println("Ark 凭证未配置，台词走内置文案池")
	}

	sessions := sessionservice.NewService()
	hub := events.NewHub()
	engine := gameservice.NewEngine(
		sessions,
		ledger.New(couplesStore),
		leaderboard.New(boardStore),
		flavorSvc,
		hub,
	)

	// Expired love stories fade away on a fixed cadence.
	go sessionservice.NewSweeper(sessions).Run(ctx)

	router := handler.NewRouter(engine, hub)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Love Arena backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
