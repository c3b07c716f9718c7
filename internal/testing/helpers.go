package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// ============================================================================
// Temporary File Helpers
// ============================================================================

// WriteFile writes content to name inside a test temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteFixture writes a fixture document and returns its path.
func WriteFixture(t testing.TB, yaml string) string {
	t.Helper()
	return WriteFile(t, "fixture.yaml", yaml)
}
