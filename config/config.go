// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Store backends.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Config holds configuration knobs for the HTTP server, the store backend
// and the order path.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	StoreBackend       string
	FirestoreProjectID string

	JWTSecret string

	// OrderConflictRetries caps how many times a conflict-aborted order
	// placement is re-attempted before the failure is returned.
	OrderConflictRetries int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout:      durenvs("SHUTDOWN_TIMEOUT", 15),
		StoreBackend:         getenv("STORE_BACKEND", BackendMemory),
		FirestoreProjectID:   getenv("FIRESTORE_PROJECT_ID", ""),
		JWTSecret:            getenv("JWT_SECRET", "dev-secret-change-me"),
		OrderConflictRetries: atoienv("ORDER_CONFLICT_RETRIES", 3),
	}
}
