package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Fatalf("unexpected backend: %s", cfg.StoreBackend)
	}
	if cfg.OrderConflictRetries != 3 {
		t.Fatalf("unexpected retries: %d", cfg.OrderConflictRetries)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.ShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STORE_BACKEND", BackendFirestore)
	t.Setenv("FIRESTORE_PROJECT_ID", "boutique-prod")
	t.Setenv("ORDER_CONFLICT_RETRIES", "5")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")

	cfg := Load()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.StoreBackend != BackendFirestore || cfg.FirestoreProjectID != "boutique-prod" {
		t.Fatalf("unexpected backend config: %+v", cfg)
	}
	if cfg.OrderConflictRetries != 5 {
		t.Fatalf("unexpected retries: %d", cfg.OrderConflictRetries)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.ShutdownTimeout)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("ORDER_CONFLICT_RETRIES", "many")
	cfg := Load()
	if cfg.OrderConflictRetries != 3 {
		t.Fatalf("expected default on malformed value, got %d", cfg.OrderConflictRetries)
	}
}
