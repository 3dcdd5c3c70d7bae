package file

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bytedance/sonic"
)

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// safeName keeps draft ids and team names usable as path segments.
func safeName(v string) string {
	return unsafePathChars.ReplaceAllString(v, "_")
}

// writeJSON persists a document atomically: encode, write a temp file in
// the same directory, rename over the final path.
func writeJSON(path string, v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return os.Rename(tmp, path)
}

// readJSON loads a document. The second return reports existence.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
