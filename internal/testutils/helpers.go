// Package testutils holds helpers shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/rule"
)

// WriteFile creates name with content in a fresh temporary directory and
// returns its absolute path. It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp file")
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0o644), "Failed to write temp file")
	return absPath
}

// Seeds parses three card tokens into an opening window, panicking on bad
// input.
func Seeds(previous2, previous, current string) [3]card.Card {
	return [3]card.Card(rule.MustWindow(previous2, previous, current))
}
