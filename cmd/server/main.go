package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/KomatechBot/geien-fes2/internal/cache"
	"github.com/KomatechBot/geien-fes2/internal/cms"
	"github.com/KomatechBot/geien-fes2/internal/config"
	"github.com/KomatechBot/geien-fes2/internal/denylist"
	"github.com/KomatechBot/geien-fes2/internal/engagement"
	"github.com/KomatechBot/geien-fes2/internal/handlers"
	"github.com/KomatechBot/geien-fes2/internal/metrics"
	"github.com/KomatechBot/geien-fes2/internal/router"
	"github.com/KomatechBot/geien-fes2/internal/token"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "geien-fes2")
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store := cms.NewClient(cfg.CMSBaseURL, cfg.CMSAPIKey, cfg.CMSTimeout)

	contentCache, err := cache.New(cfg.RedisURL, cfg.CacheTTL, log)
	if err != nil {
		// Cache is best-effort; run uncached rather than refuse to start.
		log.Warn("redis unavailable, content caching disabled", "error", err)
		contentCache = nil
	} else {
		defer contentCache.Close()
	}

	codec := token.NewCodec(cfg.CookieSecret)
	filter := denylist.New(cfg.DenylistWords)
	m := metrics.New(prometheus.DefaultRegisterer)

	likes := engagement.NewLikeService(store, codec, log)
	comments := engagement.NewCommentService(store, codec, filter, log)

	h := handlers.NewHandler(likes, comments, store, contentCache,
		token.CookieTransport{Secure: cfg.IsProduction()}, m, log)
	r := router.New(h, log)

	log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "cms", cfg.CMSBaseURL)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
