package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, scenePath string) *app {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	a, err := newApp(screen, scenePath)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func text(lines []string) string {
	return strings.Join(lines, "\n")
}

func TestFrameDescribesCameras(t *testing.T) {
	a := newTestApp(t, "")
	require.NoError(t, a.Frame(1))

	var got []string
	for _, line := range a.lines {
		got = append(got, line.Text)
	}
	out := text(got)

	assert.Contains(t, got[0], "frame 1  primary 640x384 px")
	assert.Contains(t, out, "camera_2d")
	assert.Contains(t, out, "z_difference")
	assert.Contains(t, out, "Image(image#1)")
	assert.Contains(t, out, "passes: 3")
	assert.Contains(t, out, "clear_pass depth[Window(primary)-depth clear 0 store]", "camera_2d keeps the color")
}

func TestFrameAppliesSceneEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cameras: [{name: a}, {name: b}]"), 0o644))

	a := newTestApp(t, path)
	require.NoError(t, a.Frame(1))
	assert.Equal(t, []string{"a", "b"}, a.live.Names())

	stats, err := a.live.Reload(path)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Updated)
}

func TestRunHeadless(t *testing.T) {
	assert.NoError(t, run("", 2, 1, true))
	assert.Error(t, run(filepath.Join(t.TempDir(), "missing.yaml"), 1, 1, true))
}
