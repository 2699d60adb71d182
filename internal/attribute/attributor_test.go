package attribute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlanza/canasta/internal/reconcile"
)

func playerID(id int) reconcile.Identity {
	return reconcile.Identity{ID: id, Category: reconcile.CategoryPlayer}
}

func testRoster() *ResolvedRoster {
	r := NewResolvedRoster("3", "7")
	r.Add(SideHome, "Smith, J.", playerID(1001))
	r.Add(SideHome, "Jones, A.", playerID(1002))
	r.Add(SideAway, "Doe, John", playerID(2001))
	r.Add(SideAway, "Brown, K.", playerID(2002))
	return r
}

// newestFirst reverses a chronological fixture into the source ordering.
func newestFirst(events []RawEvent) []RawEvent {
	out := make([]RawEvent, len(events))
	for i, ev := range events {
		out[len(events)-1-i] = ev
	}
	return out
}

func TestProcessGameChronology(t *testing.T) {
	chronological := []RawEvent{
		{Sequence: 6, Side: SideNeutral, Action: "Inicio del partido", Period: "1", Clock: "10:00"},
		{Sequence: 5, Side: SideHome, Action: "Canasta de 2 (Bandeja)", Period: "1", Clock: "09:30", Player: "Smith, J.", Jersey: 7, Score: "2-0"},
		{Sequence: 4, Side: SideAway, Action: "Rebote defensivo", Period: "1", Clock: "09:10", Player: "Doe, John"},
		{Sequence: 3, Side: SideAway, Action: "Canasta de 3", Period: "1", Clock: "08:45", Player: "Doe, John", Score: "2-3"},
		{Sequence: 2, Side: SideAway, Action: "Asistencia", Period: "1", Player: "Brown, K."},
		{Sequence: 1, Side: SideNeutral, Action: "Tiempo muerto", Period: "1", Clock: "08:45"},
	}

	a := NewAttributor(testRoster(), nil, 2019)
	events, report, err := a.ProcessGame(context.Background(), 101, newestFirst(chronological))
	require.NoError(t, err)
	require.Len(t, events, 6)

	// Output is chronological with sequential ids from 1.
	for i, ev := range events {
		assert.Equal(t, i+1, ev.EventID)
		assert.Equal(t, 101, ev.GameID)
	}
	assert.Equal(t, ActionGameStart, events[0].Legend)
	assert.Equal(t, ActionTimeout, events[5].Legend)

	// Shot attribution carries side, actor and sub-type.
	shot := events[1]
	assert.Equal(t, "3", shot.TeamID)
	assert.Equal(t, 1001, shot.ActorID)
	assert.Equal(t, "Smith, J.", shot.DisplayName)
	assert.Equal(t, 7, shot.Jersey)
	assert.Equal(t, ActionMade2, shot.Legend)
	assert.Equal(t, "layup", shot.ExtraInfo)
	assert.Equal(t, 30, shot.Elapsed)

	// Score markers carry forward until the next marker.
	assert.Equal(t, 0, events[0].HomeScore)
	assert.Equal(t, 0, events[0].AwayScore)
	assert.Equal(t, 2, events[2].HomeScore)
	assert.Equal(t, 0, events[2].AwayScore)
	assert.Equal(t, 2, events[3].HomeScore)
	assert.Equal(t, 3, events[3].AwayScore)
	assert.Equal(t, 3, events[5].AwayScore)

	// Missing clock inherits the previous event's elapsed time.
	assert.Equal(t, 75, events[3].Elapsed)
	assert.Equal(t, 75, events[4].Elapsed)

	assert.Equal(t, 6, report.Events)
	assert.Empty(t, report.Warnings)
}

func TestProcessGameFuzzyActorRegistration(t *testing.T) {
	index := reconcile.NewNameIndex(nil)
	roster := testRoster()
	a := NewAttributor(roster, index, 2019)

	chronological := []RawEvent{
		{Sequence: 2, Side: SideAway, Action: "Canasta de 2", Period: "1", Clock: "09:00", Player: "J. Doe", Score: "0-2"},
		{Sequence: 1, Side: SideAway, Action: "Canasta de 2", Period: "1", Clock: "08:00", Player: "J. Doe", Score: "0-4"},
	}

	events, _, err := a.ProcessGame(context.Background(), 102, newestFirst(chronological))
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Both spellings resolve to the rostered identity.
	assert.Equal(t, 2001, events[0].ActorID)
	assert.Equal(t, 2001, events[1].ActorID)
	assert.Equal(t, "Doe, John", events[0].DisplayName)

	// The in-game spelling is now an exact roster entry and an index variant.
	id, ok := roster.Lookup(SideAway, "J. Doe")
	require.True(t, ok)
	assert.Equal(t, 2001, id.ID)

	got, err := index.LookupExact(context.Background(), "J. Doe", reconcile.CategoryPlayer, "7", 2019)
	require.NoError(t, err)
	assert.Equal(t, 2001, got.ID)
}

func TestProcessGameUnresolvablePlayerFatal(t *testing.T) {
	a := NewAttributor(testRoster(), nil, 2019)

	raw := []RawEvent{
		{Sequence: 1, Side: SideHome, Action: "Canasta de 2", Period: "1", Clock: "09:00", Player: "Zzyzx, Q."},
	}

	_, _, err := a.ProcessGame(context.Background(), 103, raw)
	require.Error(t, err)

	var noMatch *reconcile.NoConfidentMatchError
	require.True(t, errors.As(err, &noMatch))
	assert.Equal(t, "Zzyzx, Q.", noMatch.Query)
	assert.Equal(t, AttributionThreshold, noMatch.Threshold)
}

func TestProcessGameUnknownActionFatal(t *testing.T) {
	a := NewAttributor(testRoster(), nil, 2019)

	raw := []RawEvent{
		{Sequence: 1, Side: SideHome, Action: "Celebración del banquillo", Period: "1", Clock: "09:00"},
	}

	_, _, err := a.ProcessGame(context.Background(), 104, raw)
	require.Error(t, err)

	var unknown *UnknownActionError
	assert.True(t, errors.As(err, &unknown))
}

func TestProcessGameSubstitutionWarnings(t *testing.T) {
	roster := NewResolvedRoster("3", "7")
	for i, name := range []string{"A, A.", "B, B.", "C, C.", "D, D.", "E, E.", "F, F."} {
		roster.Add(SideHome, name, playerID(3000+i))
	}

	chronological := []RawEvent{
		{Sequence: 9, Side: SideHome, Action: "Entra a pista", Period: "1", Clock: "10:00", Player: "A, A."},
		{Sequence: 8, Side: SideHome, Action: "Entra a pista", Period: "1", Clock: "10:00", Player: "B, B."},
		{Sequence: 7, Side: SideHome, Action: "Entra a pista", Period: "1", Clock: "10:00", Player: "C, C."},
		{Sequence: 6, Side: SideHome, Action: "Entra a pista", Period: "1", Clock: "10:00", Player: "D, D."},
		{Sequence: 5, Side: SideHome, Action: "Entra a pista", Period: "1", Clock: "10:00", Player: "E, E."},
		// Duplicate entry and a sixth player: both flagged, neither fatal.
		{Sequence: 4, Side: SideHome, Action: "Entra a pista", Period: "1", Clock: "09:00", Player: "A, A."},
		{Sequence: 3, Side: SideHome, Action: "Entra a pista", Period: "1", Clock: "09:00", Player: "F, F."},
		// Exit of someone never on court.
		{Sequence: 2, Side: SideHome, Action: "Se retira", Period: "1", Clock: "08:00", Player: "F, F."},
		{Sequence: 1, Side: SideHome, Action: "Se retira", Period: "1", Clock: "08:00", Player: "F, F."},
	}

	a := NewAttributor(roster, nil, 2019)
	events, report, err := a.ProcessGame(context.Background(), 105, newestFirst(chronological))
	require.NoError(t, err)
	assert.Len(t, events, 9)

	require.Len(t, report.Warnings, 3)
	assert.Contains(t, report.Warnings[0].Message, "already on court")
	assert.Contains(t, report.Warnings[1].Message, "6 players on court")
	assert.Contains(t, report.Warnings[2].Message, "not on court")
}

func TestProcessGameFivePlayerCheck(t *testing.T) {
	roster := NewResolvedRoster("3", "7")
	roster.Add(SideHome, "A, A.", playerID(3000))
	roster.Add(SideHome, "B, B.", playerID(3001))

	chronological := []RawEvent{
		// Play before any substitution is seen: no warning, the starting
		// five simply never appeared in the feed.
		{Sequence: 3, Side: SideHome, Action: "Canasta de 2", Period: "1", Clock: "09:30", Player: "A, A.", Score: "2-0"},
		{Sequence: 2, Side: SideHome, Action: "Entra a pista", Period: "1", Clock: "09:00", Player: "B, B."},
		// Only one player tracked on court now, so play is flagged.
		{Sequence: 1, Side: SideHome, Action: "Canasta de 2", Period: "1", Clock: "08:30", Player: "B, B.", Score: "4-0"},
	}

	a := NewAttributor(roster, nil, 2019)
	_, report, err := a.ProcessGame(context.Background(), 106, newestFirst(chronological))
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, 1, report.Warnings[0].Sequence)
	assert.Contains(t, report.Warnings[0].Message, "1 players on court")
}
