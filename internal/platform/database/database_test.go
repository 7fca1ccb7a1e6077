package database

import (
	"testing"

	"github.com/martinmanurung/cinecheck/internal/platform/config"
	"gorm.io/gorm/logger"
)

func TestDialectorByDriver(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres"} {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, Host: "localhost", Port: "1", DBName: "x"})
		if err != nil {
			t.Fatalf("%s: %v", driver, err)
		}
		if d.Name() != driver {
			t.Fatalf("dialector name = %q, want %q", d.Name(), driver)
		}
	}
	if _, err := Dialector(config.DatabaseConfig{Driver: "mongodb"}); err == nil {
		t.Fatalf("expected unknown driver to fail")
	}
}

func TestLogLevel(t *testing.T) {
	if logLevel("info") != logger.Info || logLevel("") != logger.Warn {
		t.Fatalf("unexpected log level mapping")
	}
}
