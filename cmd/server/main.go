package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"onboard/internal/directory"
	"onboard/internal/domain/wizard"
	"onboard/internal/platform/config"
	"onboard/internal/platform/db"
	"onboard/internal/session"
	"onboard/internal/submit"
	onboardinghandler "onboard/internal/transport/http/handlers/onboarding"
	"onboard/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	dir := directory.NewMemory()
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		defer pool.Close()

		loaded, err := directory.NewPostgres(pool).Load(ctx)
		if err != nil {
			log.Fatalf("directory load failed: %v", err)
		}
		dir = loaded
	}

	var transport wizard.Transport
	if cfg.SubmitEndpoint != "" {
		transport = submit.NewWebhook(cfg.SubmitEndpoint, cfg.SubmitTimeout)
	} else {
		transport = &submit.Stub{Latency: cfg.SubmitStubLatency}
	}

	inviteHash := ""
	if cfg.InviteCode != "" {
		hashed, err := session.HashInviteCode(cfg.InviteCode)
		if err != nil {
			log.Fatalf("invite code hash failed: %v", err)
		}
		inviteHash = hashed
	}

	sessions := session.NewManager(cfg.SessionTTL, func() *wizard.Controller {
		return wizard.NewController(dir, transport)
	})
	sessions.StartJanitor(ctx, cfg.JanitorInterval)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		handler := onboardinghandler.NewHandler(sessions, dir, cfg.SessionSecret, cfg.SessionTTL, inviteHash)
		handler.RegisterRoutes(r)
	})

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
