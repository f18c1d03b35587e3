package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Export writes the PNG payload into dir as <prefix>_<unixms>.png and
// returns the path. The payload is validated as PNG before anything is
// written.
func Export(dir, prefix, payload string, now time.Time) (string, error) {
	raw, err := decodeBytes(payload)
	if err != nil {
		return "", err
	}
	if _, err := Decode(payload); err != nil {
		return "", err
	}
	if prefix == "" {
		prefix = "processed"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("%s_%d.png", prefix, now.UnixMilli())
	path := filepath.Join(dir, name)
	partial := path + ".part"
	if err := os.WriteFile(partial, raw, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(partial, path); err != nil {
		return "", fmt.Errorf("finalize export: %w", err)
	}
	return path, nil
}
