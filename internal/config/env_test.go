package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("FACETAP_TEST_SET", "value")
	if got := GetEnv("FACETAP_TEST_SET", "fallback"); got != "value" {
		t.Errorf("expected value, got %q", got)
	}
	if got := GetEnv("FACETAP_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("FACETAP_TEST_INT", "42")
	n, err := GetEnvInt("FACETAP_TEST_INT", 7)
	if err != nil || n != 42 {
		t.Errorf("expected 42, got %d (%v)", n, err)
	}

	n, err = GetEnvInt("FACETAP_TEST_INT_UNSET", 7)
	if err != nil || n != 7 {
		t.Errorf("expected fallback 7, got %d (%v)", n, err)
	}

	t.Setenv("FACETAP_TEST_INT", "nope")
	if _, err := GetEnvInt("FACETAP_TEST_INT", 7); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("FACETAP_DOTENV_KEY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("FACETAP_DOTENV_KEY", "")
	os.Unsetenv("FACETAP_DOTENV_KEY")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("FACETAP_DOTENV_KEY"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
}
