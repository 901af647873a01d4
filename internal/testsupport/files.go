package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories as needed,
// and returns the path for convenience.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSignalFile places detector output under the staging signals directory
// the way a detector run would, named <kind>.json.
func WriteSignalFile(t testing.TB, cfg interface{ SignalsDir() string }, kind, content string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(cfg.SignalsDir(), kind+".json"), content)
}
