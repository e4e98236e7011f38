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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/exerciseresolver/internal/api"
	"example.com/exerciseresolver/internal/auth"
	"example.com/exerciseresolver/internal/catalog"
	"example.com/exerciseresolver/internal/catalog/postgres"
	"example.com/exerciseresolver/internal/config"
	"example.com/exerciseresolver/internal/domain"
	"example.com/exerciseresolver/internal/pipeline"
	"example.com/exerciseresolver/internal/publisher"
	httptransport "example.com/exerciseresolver/internal/transport/http"
	"example.com/exerciseresolver/internal/video"
	"example.com/exerciseresolver/internal/video/youtube"
)

func main() {
	cfg := config.Load()

	store := buildStore(cfg)
	resolver := domain.NewResolver(store)

	provider := youtube.NewClient(cfg.YouTubeBaseURL, cfg.YouTubeAPIKey, cfg.HTTPTimeout)
	selector := video.NewSelector(provider,
		video.WithMaxResults(cfg.SearchMaxResults),
		video.WithCallDelay(cfg.SearchCallDelay),
	)

	pub := publisher.NewKafka(cfg.KafkaBrokers, cfg.PublishTopic)
	defer pub.Close()
	pipe := pipeline.New(store, resolver, selector,
		pipeline.WithBatchSize(cfg.BatchSize),
		pipeline.WithBatchDelay(cfg.BatchDelay),
		pipeline.WithPublisher(pub),
	)

	handler := api.NewHandler(store, pipe, selector)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	middleware := auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}, func(r *http.Request) bool {
		return r.URL.Path == "/healthz" || strings.HasPrefix(r.URL.Path, "/metrics")
	})

	// Basic request logger
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, logger(middleware.Wrap(mux)))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("exercise-resolver listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func buildStore(cfg config.Config) domain.Store {
	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL not set, using in-memory catalog")
		return catalog.NewMemoryStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	repo := postgres.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	log.Printf("using postgres catalog")
	return repo
}
