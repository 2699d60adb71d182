package attribute

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPatchesMissingFile(t *testing.T) {
	list, err := LoadPatches(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	events := []AttributedEvent{{EventID: 1, GameID: 55, Legend: ActionMade2}}
	assert.Equal(t, events, list.Apply(55, events))
}

func TestLoadPatchesAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patches.yaml")
	data := `
- game: 55
  event: 2
  drop: true
- game: 55
  event: 3
  legend: made3
  actor: 1002
  score: 10-8
- game: 99
  event: 1
  legend: turnover
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	list, err := LoadPatches(path)
	require.NoError(t, err)

	events := []AttributedEvent{
		{EventID: 1, GameID: 55, Legend: ActionMade1, ActorID: 1001},
		{EventID: 2, GameID: 55, Legend: ActionMade2, ActorID: 1001},
		{EventID: 3, GameID: 55, Legend: ActionMade2, ActorID: 1001, HomeScore: 9, AwayScore: 8},
	}

	out := list.Apply(55, events)
	require.Len(t, out, 2)

	// Untouched event survives as-is, the dropped one is gone.
	assert.Equal(t, 1, out[0].EventID)
	assert.Equal(t, ActionMade1, out[0].Legend)

	// Replacement fields land, zero-valued ones leave the event alone.
	patched := out[1]
	assert.Equal(t, 3, patched.EventID)
	assert.Equal(t, ActionMade3, patched.Legend)
	assert.Equal(t, 1002, patched.ActorID)
	assert.Equal(t, 10, patched.HomeScore)
	assert.Equal(t, 8, patched.AwayScore)

	// Patches for other games never leak.
	other := []AttributedEvent{{EventID: 1, GameID: 42, Legend: ActionMade2}}
	assert.Equal(t, ActionMade2, list.Apply(42, other)[0].Legend)
}
