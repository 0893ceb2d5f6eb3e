package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"claimforge/internal/logging"
)

// WriteJSON writes the whole bundle as one indented JSON document,
// dataset.json in dir. Cents stay raw so downstream tooling never parses
// decimals.
func WriteJSON(dir string, b *Bundle) error {
	timer := logging.StartTimer(logging.CategoryExport, "WriteJSON")
	defer timer.Stop()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	path := filepath.Join(dir, "dataset.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Export("wrote JSON bundle to %s", path)
	return nil
}
