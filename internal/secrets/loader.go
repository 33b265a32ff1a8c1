package secrets

import (
	"fmt"
	"os"
	"strings"
)

// FromFile reads a secret from the given file and returns it trimmed. The
// name is used in error messages to give more context about the secret.
func FromFile(name, path string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "secret"
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, path, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, path)
	}

	return secret, nil
}
