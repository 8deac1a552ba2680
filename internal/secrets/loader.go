// Package secrets resolves credentials for analyzer providers.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source lists the places a secret may come from, in order of precedence:
// File, then Env, then Value.
type Source struct {
	// Name gives context in error messages.
	Name string
	// Value is an inline secret from configuration.
	Value string
	// Env names an environment variable holding the secret.
	Env string
	// File points to a file whose whole content is the secret.
	File string
}

// Load returns the trimmed secret from the first configured place of src.
// A configured but unreadable or empty file is an error; it never falls back.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s is not configured", name)
}
