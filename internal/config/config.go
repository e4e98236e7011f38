package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration for the exercise resolver.
type Config struct {
	HTTPAddress    string
	MetricsAddress string
	HTTPTimeout    time.Duration

	DatabaseURL string

	JWTSecret string
	JWTIssuer string

	KafkaBrokers   []string
	ConsumerGroup  string
	ConsumerTopics []string
	PublishTopic   string

	YouTubeAPIKey    string
	YouTubeBaseURL   string
	SearchMaxResults int
	SearchCallDelay  time.Duration

	BatchSize  int
	BatchDelay time.Duration
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		HTTPAddress:    getEnv("HTTP_ADDRESS", ":8095"),
		MetricsAddress: getEnv("METRICS_ADDRESS", ":9196"),
		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT", 10*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer: getEnv("JWT_ISSUER", "i5e.identity"),

		KafkaBrokers:   splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		ConsumerGroup:  getEnv("CONSUMER_GROUP_ID", "exercise-resolver-consumer"),
		ConsumerTopics: splitAndTrim(getEnv("CONSUMER_TOPICS", "plan_events")),
		PublishTopic:   getEnv("PUBLISH_TOPIC", "exercise_events"),

		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		YouTubeBaseURL:   getEnv("YOUTUBE_BASE_URL", ""),
		SearchMaxResults: getIntEnv("SEARCH_MAX_RESULTS", 5),
		SearchCallDelay:  getDurationEnv("SEARCH_CALL_DELAY", 500*time.Millisecond),

		BatchSize:  getIntEnv("BATCH_SIZE", 5),
		BatchDelay: getDurationEnv("BATCH_DELAY", 2*time.Second),
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
