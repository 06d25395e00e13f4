// Package secrets resolves credentials that may be given inline or in a file.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or environment.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
}

// Load returns the trimmed secret from src. File wins over Value. An error is
// returned when neither yields a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
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

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}

// LoadAll resolves every source and reports all failures at once, so a
// misconfigured start lists every missing credential instead of the first.
func LoadAll(sources ...Source) ([]string, error) {
	values := make([]string, len(sources))
	var errs []error

	for i, src := range sources {
		value, err := Load(src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[i] = value
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return values, nil
}
