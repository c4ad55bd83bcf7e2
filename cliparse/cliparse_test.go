// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	// Empty values read as unset, keeping the test hermetic.
	for _, key := range []string{"PORT", "DATA_DIR", "DATABASE_URL", "DATABASE_DRIVER",
		"USE_DATABASE", "OUTPUT_ROOT", "BUILD_COMMAND", "UPLOADS_DIR", "ADMIN_EMAIL", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("data dir = %q, want data", cfg.DataDir)
	}
	if cfg.UseDatabase {
		t.Error("database backend on by default")
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Errorf("driver = %q, want postgres", cfg.DatabaseDriver)
	}
	if cfg.OutputRoot != "dist" {
		t.Errorf("output root = %q, want dist", cfg.OutputRoot)
	}
	if cfg.BuildCommand != "npm run generate" {
		t.Errorf("build command = %q", cfg.BuildCommand)
	}
	if cfg.UploadsDir != "uploads" {
		t.Errorf("uploads dir = %q, want uploads", cfg.UploadsDir)
	}
	if cfg.AdminEmail != "admin@localhost" {
		t.Errorf("admin email = %q", cfg.AdminEmail)
	}
}

func TestFlagsOverrideDefaults(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-p", "8080",
		"-data", "/var/lib/atelier",
		"-output", "/srv/site",
		"-build-cmd", "make site",
		"-uploads", "/srv/uploads",
	})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.DataDir != "/var/lib/atelier" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if cfg.OutputRoot != "/srv/site" {
		t.Errorf("output root = %q", cfg.OutputRoot)
	}
	if cfg.BuildCommand != "make site" {
		t.Errorf("build command = %q", cfg.BuildCommand)
	}
	if cfg.UploadsDir != "/srv/uploads" {
		t.Errorf("uploads dir = %q", cfg.UploadsDir)
	}
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", "/tmp/atelier-data")
	t.Setenv("ADMIN_EMAIL", "owner@example.com")
	t.Setenv("ADMIN_PASSWORD", "from-env")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Port)
	}
	if cfg.DataDir != "/tmp/atelier-data" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if cfg.AdminEmail != "owner@example.com" {
		t.Errorf("admin email = %q", cfg.AdminEmail)
	}
	if cfg.AdminPassword != "from-env" {
		t.Errorf("admin password = %q", cfg.AdminPassword)
	}

	// Flags still win over env.
	cfg, err = ParseFlags([]string{"-p", "9001"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Port != 9001 {
		t.Errorf("port = %d, want 9001", cfg.Port)
	}
}

func TestInvalidPortEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := ParseFlags(nil); err == nil {
		t.Error("invalid PORT accepted")
	}
}

func TestDatabaseSelection(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("USE_DATABASE", "")

	// Opting into the database backend without a URL is a config error.
	if _, err := ParseFlags([]string{"-use-db", "true"}); err == nil {
		t.Error("database backend without a URL accepted")
	}

	cfg, err := ParseFlags([]string{"-use-db", "true", "-d", "postgres://localhost/atelier", "-t", "sqlite"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if !cfg.UseDatabase {
		t.Error("use-db flag ignored")
	}
	if cfg.DatabaseURL != "postgres://localhost/atelier" {
		t.Errorf("database url = %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseDriver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.DatabaseDriver)
	}

	t.Setenv("USE_DATABASE", "1")
	t.Setenv("DATABASE_URL", "postgres://localhost/atelier")
	cfg, err = ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags with env: %v", err)
	}
	if !cfg.UseDatabase {
		t.Error("USE_DATABASE env ignored")
	}
}

func TestTruthy(t *testing.T) {
	for _, s := range []string{"1", "t", "T", "true", "TRUE", "True", "yes", "y", "on"} {
		if !truthy(s) {
			t.Errorf("truthy(%q) = false", s)
		}
	}
	for _, s := range []string{"", "0", "false", "no", "off", "maybe"} {
		if truthy(s) {
			t.Errorf("truthy(%q) = true", s)
		}
	}
}
