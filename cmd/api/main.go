// cmd/api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/gbell030587-alt/Gbell3587/internal/config"
	"github.com/gbell030587-alt/Gbell3587/internal/http/routes"
	"github.com/gbell030587-alt/Gbell3587/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	st, closeStore, err := store.Open(context.Background(), cfg.DatabaseURL, cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer closeStore()

	// Sessions
	sess := scs.New()
	sess.Lifetime = 30 * 24 * time.Hour
	sess.Cookie.HttpOnly = true
	sess.Cookie.SameSite = http.SameSiteLaxMode
	sess.Cookie.Secure = false

	s := routes.New(routes.ServerOptions{
		Sess:      sess,
		Store:     st,
		Log:       logger,
		RedisAddr: cfg.RedisAddr,
	})

	// The presentation layer runs on its own origin
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	h := hlog.NewHandler(logger)(s.Router)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(sess.LoadAndSave(h)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("port", cfg.Port).Bool("postgres", cfg.HasDatabase()).Msg("api listening")
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
