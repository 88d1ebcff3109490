package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// WriteUsers serializes the collection into users.json under the provided
// directory, matching the payload shape the remote endpoint serves.
func WriteUsers(users []domain.User, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, "users.json")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(users); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}
