package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/freeeve/tergiversators/internal/auth"
	"github.com/freeeve/tergiversators/internal/config"
	"github.com/freeeve/tergiversators/internal/handler"
	"github.com/freeeve/tergiversators/internal/logger"
	"github.com/freeeve/tergiversators/internal/middleware"
	"github.com/freeeve/tergiversators/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Dev: cfg.Dev})
	log.Info().
		Int("maxGames", cfg.MaxGames).
		Dur("seatTokenTTL", cfg.SeatTokenTTL).
		Strs("corsOrigins", cfg.CORSOrigins).
		Msg("Config loaded")

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.SeatTokenTTL)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	gameSvc := service.NewGameService(jwtMgr, wsHub, cfg.MaxGames)

	// Handlers
	gameHandler := handler.NewGameHandler(gameSvc)
	actionHandler := handler.NewActionHandler(gameSvc)
	wsHandler := handler.NewWSHandler(wsHub, jwtMgr, gameSvc)

	// Router
	mux := http.NewServeMux()
	seatMw := auth.Middleware(jwtMgr)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	api := http.NewServeMux()
	api.HandleFunc("POST /games", gameHandler.CreateGame)
	api.HandleFunc("GET /games", gameHandler.ListGames)
	api.HandleFunc("GET /games/{id}", gameHandler.GetGame)
	api.HandleFunc("DELETE /games/{id}", gameHandler.DeleteGame)

	// Seat-token routes
	api.Handle("GET /games/{id}/seat", seatMw(http.HandlerFunc(gameHandler.GetSeat)))
	api.Handle("POST /games/{id}/actions", seatMw(http.HandlerFunc(actionHandler.SubmitAction)))

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", api))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/games/{id}/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.Recover, middleware.CORS(cfg.CORSOrigins), middleware.JSON)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
	log.Info().Msg("Server stopped")
}
