package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDefaultTimeline(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, 150, "", "", ""))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 151, "header plus one row per tick")
	assert.Contains(t, lines[0], "grounded")

	body := out.String()
	assert.Contains(t, body, "kick")
	assert.Contains(t, body, "uppercut")
	assert.Contains(t, body, "dodge_roll")
	assert.Contains(t, body, "left")
}

func TestRunCustomTimeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- tick: 0\n  keys: [A]\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(&out, 5, path, "arena", ""))
	assert.Contains(t, out.String(), "-8.00")

	require.Error(t, run(&out, 5, filepath.Join(t.TempDir(), "none.yaml"), "", ""))
	require.Error(t, run(&out, 5, path, "missing", ""))
}
