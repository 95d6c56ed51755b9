package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowstate/internal/domain"
	"flowstate/internal/repository"
	"flowstate/internal/repository/sqlite"
)

type env struct {
	dir     string
	config  string
	journal string
}

func newEnv(t *testing.T) env {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	dir := t.TempDir()
	e := env{
		dir:     dir,
		config:  filepath.Join(dir, "flowstate.toml"),
		journal: filepath.Join(dir, "journal.db"),
	}
	content := fmt.Sprintf(`
[editor.placement]
width = 100
height = 100
seed = 42

[journal]
enabled = true
path = %q
`, e.journal)
	require.NoError(t, os.WriteFile(e.config, []byte(content), 0o644))
	return e
}

func (e env) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e env) run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShow(t *testing.T) {
	e := newEnv(t)

	t.Run("json", func(t *testing.T) {
		out, err := e.run("show", "--format", "json")
		require.NoError(t, err)

		var state domain.State
		require.NoError(t, json.Unmarshal([]byte(out), &state))
		assert.Len(t, state.Nodes, 3)
		assert.Len(t, state.Edges, 3)
		assert.Equal(t, 1.0, state.Viewport.Zoom)
	})

	t.Run("table", func(t *testing.T) {
		out, err := e.run("show")
		require.NoError(t, err)
		assert.Contains(t, out, "nodes (3)")
		assert.Contains(t, out, "edges (3)")
		assert.Contains(t, out, "e1-2")
		assert.Contains(t, out, "zoom=1")
		assert.Contains(t, out, "flags none")
	})

	t.Run("seed override", func(t *testing.T) {
		seed := e.file(t, "seed.yaml", "nodes:\n  - id: solo\n    data: {label: Solo}\nedges: []\n")
		out, err := e.run("show", "-f", "yaml", "--seed", seed)
		require.NoError(t, err)
		assert.Contains(t, out, "id: solo")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := e.run("show", "--format", "xml")
		assert.Error(t, err)
	})
}

func TestReplay(t *testing.T) {
	e := newEnv(t)
	script := e.file(t, "script.yaml", `
- type: addNewNode
- type: setSelectedNodeId
  payload: "4"
- type: toggleLightTheme
- type: updateNodes
  payload:
    - {type: position, id: "4", position: {x: 7, y: 8}}
`)

	out, err := e.run("replay", script, "--format", "json")
	require.NoError(t, err)

	var state domain.State
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	require.Len(t, state.Nodes, 4)
	assert.Equal(t, "Node 4", state.Nodes[3].Data.Label)
	assert.Equal(t, domain.Position{X: 7, Y: 8}, state.Nodes[3].Position)
	assert.Equal(t, "4", state.SelectedNodeID)
	assert.True(t, state.LightTheme)

	out, err = e.run("replay", script)
	require.NoError(t, err)
	assert.Contains(t, out, "✓   1 addNewNode")
	assert.Contains(t, out, "nodes (4)")
	assert.Contains(t, out, "flags light-theme")
}

func TestReplayRejected(t *testing.T) {
	e := newEnv(t)
	script := e.file(t, "script.json", `[{"type": "zoomIn"}, {"type": "setZoom", "payload": "far"}, {"type": "zoomOut"}]`)

	out, err := e.run("replay", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action 2 (setZoom)")
	assert.Contains(t, out, "✗   2 setZoom")
	assert.NotContains(t, out, "zoomOut")
}

func TestCheck(t *testing.T) {
	e := newEnv(t)

	t.Run("clean", func(t *testing.T) {
		script := e.file(t, "clean.yaml", "- type: zoomIn\n")
		out, err := e.run("check", script)
		require.NoError(t, err)
		assert.Contains(t, out, "no dangling references")
	})

	t.Run("dangling", func(t *testing.T) {
		script := e.file(t, "dangling.yaml", "- type: setSelectedNodeId\n  payload: \"2\"\n- type: setNodes\n  payload: []\n")
		out, err := e.run("check", "-q", script)
		require.ErrorIs(t, err, errDangling)
		assert.Contains(t, out, "7 dangling references")
		assert.Contains(t, out, "edge_source")
		assert.NotContains(t, out, "setNodes")
	})
}

func TestJournal(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("journal")
	require.Error(t, err)

	j, err := sqlite.New(e.journal)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, j.Record(ctx, &repository.Entry{Action: "zoomIn", Version: 1}))
	require.NoError(t, j.Record(ctx, &repository.Entry{Action: "explode", Version: 1, Error: "unknown action"}))
	require.NoError(t, j.Close())

	out, err := e.run("journal", "--json", "--limit", "1")
	require.NoError(t, err)

	var entries []repository.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "explode", entries[0].Action)
	assert.True(t, entries[0].Failed())

	out, err = e.run("journal")
	require.NoError(t, err)
	assert.Contains(t, out, "zoomIn")
	assert.Contains(t, out, "unknown action")
}

func TestConfigSummary(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("config")
	require.NoError(t, err)
	assert.Contains(t, out, "Placement: 100x100")
	assert.Contains(t, out, "Journal: "+e.journal)
}

func TestInvalidConfig(t *testing.T) {
	e := newEnv(t)
	bad := e.file(t, "bad.yaml", "log:\n  level: loud\n")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", bad, "show"})
	assert.Error(t, cmd.Execute())
}
