package cli

import (
	"testing"

	"github.com/Jonathan-Adapt/pcbridge/config"
)

func TestDatabaseURLResolution(t *testing.T) {
	h := newMigrateHandler(&config.Config{
		DatabaseURL: "postgres://configured/db",
	})

	if got := h.databaseURL([]string{"postgres://cli/db"}); got != "postgres://cli/db" {
		t.Errorf("argument should win, got %q", got)
	}
	if got := h.databaseURL(nil); got != "postgres://configured/db" {
		t.Errorf("expected configured fallback, got %q", got)
	}
	if got := h.databaseURL([]string{""}); got != "postgres://configured/db" {
		t.Errorf("empty argument should fall back, got %q", got)
	}

	h = newMigrateHandler(&config.Config{})
	if got := h.databaseURL(nil); got != "" {
		t.Errorf("expected empty resolution, got %q", got)
	}
}
