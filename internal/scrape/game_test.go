package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlanza/canasta/internal/reconcile"
)

func TestParseGameSummary(t *testing.T) {
	doc := loadFixture(t, "game.html")

	g, err := ParseGameSummary(doc, 18102)
	require.NoError(t, err)

	assert.Equal(t, 18102, g.GameID)
	assert.Equal(t, "3", g.HomeTeamID)
	assert.Equal(t, "14", g.AwayTeamID)
	assert.Equal(t, 35, g.Journey)
	assert.Equal(t, time.Date(2018, 5, 27, 18, 30, 0, 0, time.UTC), g.KickoffTime)
	assert.Equal(t, "Fernando Buesa Arena", g.Venue)
	assert.Equal(t, 10084, g.Attendance)

	assert.Equal(t, 87, g.HomeScore)
	assert.Equal(t, 70, g.AwayScore)
	assert.Equal(t, []int{18, 26, 15, 28}, g.HomePartials)
	assert.Equal(t, []int{16, 20, 20, 14}, g.AwayPartials)
}

func TestParseBoxScore(t *testing.T) {
	doc := loadFixture(t, "game.html")

	box, err := ParseBoxScore(doc, "game-18102.html")
	require.NoError(t, err)

	// Home: two players, the team row, the coach. Totals row is skipped.
	require.Len(t, box.Home, 4)

	starter := box.Home[0]
	assert.Equal(t, 20212, starter.ActorID)
	assert.Equal(t, "Smith, J.", starter.Name)
	assert.Equal(t, reconcile.CategoryPlayer, starter.Category)
	assert.True(t, starter.IsStarter)
	assert.Equal(t, 7, starter.Jersey)
	assert.Equal(t, 25*60+30, starter.Seconds)
	assert.Equal(t, 12, starter.Points)
	assert.Equal(t, 4, starter.TwoMade)
	assert.Equal(t, 6, starter.TwoAttempted)
	assert.Equal(t, 1, starter.ThreeMade)
	assert.Equal(t, 3, starter.ThreeAttempted)
	assert.Equal(t, 1, starter.OneMade)
	assert.Equal(t, 2, starter.OneAttempted)
	assert.Equal(t, 3, starter.DefReb)
	assert.Equal(t, 2, starter.OffReb)
	assert.Equal(t, 4, starter.Assists)
	assert.Equal(t, 1, starter.Steals)
	assert.Equal(t, 2, starter.Turnovers)
	assert.Equal(t, 1, starter.Counterattacks)
	assert.Equal(t, 0, starter.Blocks)
	assert.Equal(t, 1, starter.BlocksReceived)
	assert.Equal(t, 0, starter.Dunks)
	assert.Equal(t, 2, starter.Fouls)
	assert.Equal(t, 3, starter.FoulsReceived)
	assert.Equal(t, 5, starter.PlusMinus)
	assert.Equal(t, 14, starter.Efficiency)

	bench := box.Home[1]
	assert.Equal(t, 20213, bench.ActorID)
	assert.False(t, bench.IsStarter)
	assert.Equal(t, 11, bench.Jersey)

	teamRow := box.Home[2]
	assert.Equal(t, TeamBench, teamRow.ActorID)
	assert.Equal(t, "Equipo", teamRow.Name)
	assert.Equal(t, reconcile.CategoryPlayer, teamRow.Category)
	assert.Equal(t, 1, teamRow.DefReb)

	coach := box.Home[3]
	assert.Equal(t, 30001, coach.ActorID)
	assert.Equal(t, reconcile.CategoryCoach, coach.Category)
	assert.Equal(t, "Entrenador, M.", coach.Name)

	// Away: the five-fouls marker row and the ghost row are both dropped.
	require.Len(t, box.Away, 1)
	assert.Equal(t, 20501, box.Away[0].ActorID)
	assert.Equal(t, "Doe, John", box.Away[0].Name)
	assert.Equal(t, 21, box.Away[0].Points)

	require.Len(t, box.Referees, 2)
	assert.Equal(t, reconcile.RawNamePair{ID: 20400, Name: "Aliaga Sole, J.", SourcePage: "game-18102.html"}, box.Referees[0])
	// A zero id means the crew page carries no profile yet.
	assert.Equal(t, 0, box.Referees[1].ID)
	assert.Equal(t, "Reparto, Z.", box.Referees[1].Name)
}
