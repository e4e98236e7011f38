package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"example.com/exerciseresolver/internal/catalog"
	"example.com/exerciseresolver/internal/catalog/postgres"
	"example.com/exerciseresolver/internal/config"
	"example.com/exerciseresolver/internal/consumer"
	"example.com/exerciseresolver/internal/domain"
	"example.com/exerciseresolver/internal/pipeline"
	"example.com/exerciseresolver/internal/publisher"
	"example.com/exerciseresolver/internal/video"
	"example.com/exerciseresolver/internal/video/youtube"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler()}
	go func() {
		log.Printf("resolver consumer metrics listening on %s", cfg.MetricsAddress)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

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
	handler := consumer.NewPlanHandler(pipe)
	var wg sync.WaitGroup

	for _, topic := range cfg.ConsumerTopics {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.KafkaBrokers,
			GroupID:        cfg.ConsumerGroup,
			Topic:          topic,
			MinBytes:       1e3,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		})
		proc := consumer.NewProcessor(reader, handler)

		wg.Add(1)
		go func(tp string, r *kafka.Reader) {
			defer wg.Done()
			defer r.Close()
			if err := proc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("consumer stopped with error (topic=%s): %v", tp, err)
			}
		}(topic, reader)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	log.Println("resolver consumer shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("metrics shutdown error: %v", err)
	}

	wg.Wait()
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
	return repo
}
