package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean; unset optional backends leave their
// fields empty and the corresponding component unwired.
type Server struct {
	Addr          string
	LogLevel      string
	JWTSigningKey string

	// PostgresDSN selects the Postgres record store adapter when set;
	// otherwise the in-memory store is used.
	PostgresDSN string

	// RedisURL enables the read-through record cache when set.
	RedisURL      string
	CacheTTL      time.Duration
	RedisPoolSize int

	// KafkaBrokers enables the domain-event pipeline when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// QuorumRoles overrides the default OWNER+BENEFICIARY signature quorum.
	QuorumRoles []string

	// Organization identifies this deployment in emitted events and as the
	// fallback caller organization.
	Organization string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("FONCIER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "foncier.contract-events"
	}

	org := os.Getenv("FONCIER_ORG")
	if org == "" {
		org = "AFOR"
	}

	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			cacheTTL = parsed
		}
	}

	return Server{
		Addr:          addr,
		LogLevel:      os.Getenv("LOG_LEVEL"),
		JWTSigningKey: jwtSigningKey,
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheTTL:      cacheTTL,
		RedisPoolSize: 10,
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    topic,
		QuorumRoles:   splitList(os.Getenv("QUORUM_ROLES")),
		Organization:  org,
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
