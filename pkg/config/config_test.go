package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()
		if cfg.GRPCPort != 8081 || cfg.HTTPPort != 8080 {
			t.Fatalf("unexpected ports: %d/%d", cfg.GRPCPort, cfg.HTTPPort)
		}
		if cfg.Cart.SessionTTL != 2*time.Hour {
			t.Fatalf("unexpected session ttl: %v", cfg.Cart.SessionTTL)
		}
		if cfg.Catalog.Backend != "postgres" {
			t.Fatalf("unexpected backend: %q", cfg.Catalog.Backend)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("GRPC_PORT", "9000")
		t.Setenv("CART_SESSION_TTL", "15m")
		t.Setenv("CATALOG_BACKEND", "Firestore")
		t.Setenv("ADMIN_EMAILS", " a@shop.pk, ,B@shop.pk ")
		t.Setenv("CART_COOKIE_SECURE", "true")

		cfg := Load()
		if cfg.GRPCPort != 9000 {
			t.Fatalf("got port %d", cfg.GRPCPort)
		}
		if cfg.Cart.SessionTTL != 15*time.Minute {
			t.Fatalf("got ttl %v", cfg.Cart.SessionTTL)
		}
		if cfg.Catalog.Backend != "firestore" {
			t.Fatalf("got backend %q", cfg.Catalog.Backend)
		}
		if len(cfg.Admin.Emails) != 2 || cfg.Admin.Emails[1] != "B@shop.pk" {
			t.Fatalf("got emails %v", cfg.Admin.Emails)
		}
		if !cfg.Cart.CookieSecure {
			t.Fatal("expected secure cookie")
		}
	})

	t.Run("bad values fall back", func(t *testing.T) {
		t.Setenv("GRPC_PORT", "abc")
		t.Setenv("CART_SESSION_TTL", "-1s")

		cfg := Load()
		if cfg.GRPCPort != 8081 {
			t.Fatalf("got port %d", cfg.GRPCPort)
		}
		if cfg.Cart.SessionTTL != 2*time.Hour {
			t.Fatalf("got ttl %v", cfg.Cart.SessionTTL)
		}
	})
}
