package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration assembled from the environment.
type Server struct {
	Addr string

	// Shared API key guarding all endpoints except the vendor redirect.
	// APIKeyHash, when set, takes precedence over the plaintext key.
	APIKey     string
	APIKeyHash string

	Vendor   Vendor
	Issuance Issuance
	Storage  Storage
	Kafka    Kafka
}

// Vendor configures the KYC vendor client.
type Vendor struct {
	BaseURL      string
	APIKey       string
	SharedSecret string
	Timeout      time.Duration
	MaxRetries   int
}

// Issuance configures the credential issuance network client.
type Issuance struct {
	BaseURL    string
	IssuerID   string
	SigningKey string
	Timeout    time.Duration
}

// Storage selects and configures the object store backend.
type Storage struct {
	Backend   string // "fs", "redis" or "memory"
	FSRoot    string
	RedisURL  string
	KeyPrefix string
}

// Kafka configures the optional audit event producer.
// Audit events fall back to the process logger when Brokers is empty.
type Kafka struct {
	Brokers    string
	AuditTopic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:       envOr("VOUCH_ADDR", ":3000"),
		APIKey:     os.Getenv("VOUCH_API_KEY"),
		APIKeyHash: os.Getenv("VOUCH_API_KEY_HASH"),
		Vendor: Vendor{
			BaseURL:      os.Getenv("VENDOR_BASE_URL"),
			APIKey:       os.Getenv("VENDOR_API_KEY"),
			SharedSecret: os.Getenv("VENDOR_SHARED_SECRET"),
			Timeout:      durationOr("VENDOR_TIMEOUT", 10*time.Second),
			MaxRetries:   intOr("VENDOR_MAX_RETRIES", 2),
		},
		Issuance: Issuance{
			BaseURL:    os.Getenv("ISSUANCE_BASE_URL"),
			IssuerID:   os.Getenv("ISSUANCE_ISSUER_ID"),
			SigningKey: os.Getenv("ISSUANCE_SIGNING_KEY"),
			Timeout:    durationOr("ISSUANCE_TIMEOUT", 10*time.Second),
		},
		Storage: Storage{
			Backend:   envOr("STORAGE_BACKEND", "fs"),
			FSRoot:    envOr("STORAGE_FS_ROOT", "./data"),
			RedisURL:  os.Getenv("STORAGE_REDIS_URL"),
			KeyPrefix: envOr("STORAGE_KEY_PREFIX", "vouch"),
		},
		Kafka: Kafka{
			Brokers:    os.Getenv("KAFKA_BROKERS"),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "vouch.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
