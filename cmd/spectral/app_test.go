package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/spectral/axis"
	"github.com/c360studio/spectral/frame"
)

func TestActivationByAxis(t *testing.T) {
	reg := axis.Default()

	out := activationByAxis(reg, map[string]float64{
		"order-chaos":   0.1,
		"not-a-real-ax": 0.2,
	})

	require.Len(t, out, 1)
	assert.Equal(t, 0.1, out[axis.OrderChaos])

	assert.Nil(t, activationByAxis(reg, nil))
}

func TestPrintAxes(t *testing.T) {
	var out bytes.Buffer
	printAxes(&out)

	text := out.String()
	assert.Contains(t, text, "order-chaos")
	assert.Contains(t, text, "chaos")
	assert.Contains(t, text, "self-other")
}

func TestAppRun_CanonicalFrame(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, frame.WriteCanonical(frame.Canonical(axis.Default()), dir))

	app, err := NewApp(appOptions{
		configPath: writeConfig(t, dir, false),
		logLevel:   "error",
	})
	require.NoError(t, err)
	defer app.Close()

	summary, err := app.Run()
	require.NoError(t, err)
	assert.True(t, summary.Passed)
	assert.Equal(t, 16, summary.PolesChecked)
}

func TestAppRun_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, frame.WriteCanonical(frame.Canonical(axis.Default()), dir))

	app, err := NewApp(appOptions{
		configPath: writeConfig(t, dir, true),
		logLevel:   "error",
	})
	require.NoError(t, err)
	defer app.Close()

	_, err = app.Run()
	require.NoError(t, err)

	runs, err := app.store.ListRuns(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Passed)
}

// writeConfig writes a minimal config pointing at frameDir and returns its path.
func writeConfig(t *testing.T, frameDir string, history bool) string {
	t.Helper()
	content := "frame:\n  dir: " + frameDir + "\n"
	if history {
		content += "history:\n  enabled: true\n  path: " + filepath.Join(t.TempDir(), "history.db") + "\n"
	}
	path := filepath.Join(t.TempDir(), "spectral.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
