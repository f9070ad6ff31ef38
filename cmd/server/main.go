package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/premium_service/internal/authclient"
	"github.com/Skotchmaster/premium_service/internal/config"
	"github.com/Skotchmaster/premium_service/internal/db"
	"github.com/Skotchmaster/premium_service/internal/events"
	"github.com/Skotchmaster/premium_service/internal/httpserver"
	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/metrics"
	"github.com/Skotchmaster/premium_service/internal/middleware/auth"
	"github.com/Skotchmaster/premium_service/internal/repo"
	"github.com/Skotchmaster/premium_service/internal/service"
	"github.com/Skotchmaster/premium_service/internal/tokens"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	cfg.MustBeValid()

	logger := logging.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(initCtx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := events.NewProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		pub = prod
	} else {
		logger.Info("kafka disabled, events are dropped")
	}
	emitter := events.NewEmitter(pub)

	codec := tokens.NewCodec(cfg.JWTSecret)
	store := repo.New(gdb)
	gateway := authclient.NewClient(cfg.AuthURL, cfg.AppID, cfg.AuthTimeout)

	m := metrics.New()
	e := httpserver.NewEcho(logger, m, httpserver.Options{
		Production:  cfg.Production(),
		CORSOrigins: cfg.CORSOrigins,
	})
	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Gateway: gateway,
			Repo:    store,
			Codec:   codec,
			Events:  emitter,
		}},
		Users: &httpserver.UserHTTP{Svc: &service.UserService{
			Repo:   store,
			Codec:  codec,
			Events: emitter,
		}},
		Authenticator: auth.New(codec, cfg.AppID),
		Metrics:       m,
		Ready:         db.Pinger(gdb),
		FaviconPath:   cfg.FaviconPath,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
