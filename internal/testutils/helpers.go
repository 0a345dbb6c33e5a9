package testutils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureDir is pkg/bpmn/testdata, resolved from this file so callers in any package agree.
func fixtureDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "pkg", "bpmn", "testdata")
}

// ReadFixture returns the contents of a BPMN fixture such as "invoice.bpmn".
// It fails the test immediately on error.
func ReadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir(), name))
	require.NoError(t, err, "Failed to read fixture %s", name)
	return string(data)
}

// DefinitionsDir creates a temporary directory holding copies of the named fixtures.
// It returns the absolute path to the temp dir.
func DefinitionsDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	absPath, err := filepath.Abs(dir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for _, name := range names {
		err := os.WriteFile(filepath.Join(absPath, name), []byte(ReadFixture(t, name)), 0644)
		require.NoError(t, err, "Failed to copy fixture %s", name)
	}
	return absPath
}
