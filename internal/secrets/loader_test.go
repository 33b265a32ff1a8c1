package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  top-secret \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	secret, err := FromFile("gemini api key", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "top-secret" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := FromFile("gemini api key", path); err == nil {
		t.Fatalf("expected an error for an empty secret file")
	}
}

func TestFromFileNotConfigured(t *testing.T) {
	if _, err := FromFile("gemini api key", "  "); err == nil {
		t.Fatalf("expected an error when no file is configured")
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile("gemini api key", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
