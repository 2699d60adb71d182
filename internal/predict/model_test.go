package predict

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlanza/canasta/internal/store"
)

var seasonStart = time.Date(2019, time.September, 28, 18, 0, 0, 0, time.UTC)

func playedGame(id int, home, away string, day, homeScore, awayScore int) *store.Game {
	return &store.Game{
		ID:          id,
		HomeTeamID:  home,
		AwayTeamID:  away,
		Season:      2019,
		Journey:     1 + id/2,
		KickoffTime: sql.NullTime{Time: seasonStart.AddDate(0, 0, day), Valid: true},
		ScoreHome:   sql.NullInt32{Int32: int32(homeScore), Valid: true},
		ScoreAway:   sql.NullInt32{Int32: int32(awayScore), Valid: true},
	}
}

func TestFormBefore(t *testing.T) {
	history := []*store.Game{
		playedGame(1, "3", "7", 1, 90, 80),
		playedGame(2, "9", "3", 5, 84, 80),
		playedGame(3, "7", "3", 8, 70, 72),
	}
	cutoff := seasonStart.AddDate(0, 0, 10)

	f := formBefore(history, "3", cutoff, 7)
	assert.InDelta(t, 0.5, f.winRate, 1e-9)
	assert.InDelta(t, -1.0, f.diffAvg, 1e-9)

	// The wider window picks up the opening win as well.
	f = formBefore(history, "3", cutoff, 30)
	assert.InDelta(t, 2.0/3.0, f.winRate, 1e-9)
	assert.InDelta(t, 8.0/3.0, f.diffAvg, 1e-9)
}

func TestFormBeforeUnknownTeam(t *testing.T) {
	history := []*store.Game{playedGame(1, "3", "7", 1, 90, 80)}
	f := formBefore(history, "55", seasonStart.AddDate(0, 0, 10), 30)
	assert.InDelta(t, 0.5, f.winRate, 1e-9)
	assert.Zero(t, f.diffAvg)
}

func TestFormBeforeExcludesCutoffGame(t *testing.T) {
	history := []*store.Game{playedGame(1, "3", "7", 10, 90, 80)}
	f := formBefore(history, "3", seasonStart.AddDate(0, 0, 10), 30)
	assert.InDelta(t, 0.5, f.winRate, 1e-9)
}

func TestFeatureVector(t *testing.T) {
	history := []*store.Game{playedGame(1, "3", "7", 1, 90, 80)}
	x := featureVector(history, "3", "7", seasonStart.AddDate(0, 0, 5), Config{LongDays: 30, ShortDays: 2})

	require.Len(t, x, featureCount)
	assert.Equal(t, 1.0, x[0])
	// Long window: home won by 10, away lost by 10.
	assert.Equal(t, []float64{1, 10, 0, -10}, x[1:5])
	// Short window closed before the game was played.
	assert.Equal(t, []float64{0.5, 0, 0.5, 0}, x[5:9])
}

func TestTrainNeedsEnoughGames(t *testing.T) {
	games := []*store.Game{playedGame(1, "3", "7", 1, 90, 80)}
	_, err := Train(games, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finished games")
}

func seasonHistory() []*store.Game {
	// Four clubs: "1" dominant, "4" weak, the middle two trading games.
	results := []struct {
		home, away           string
		homeScore, awayScore int
	}{
		{"1", "2", 88, 79}, {"3", "4", 81, 74}, {"1", "3", 92, 80}, {"2", "4", 85, 77},
		{"1", "4", 95, 70}, {"2", "3", 78, 82}, {"2", "1", 80, 86}, {"4", "3", 72, 84},
		{"3", "1", 77, 83}, {"4", "2", 69, 88}, {"4", "1", 68, 90}, {"3", "2", 91, 85},
		{"1", "2", 84, 81}, {"3", "4", 79, 71}, {"1", "3", 87, 78}, {"2", "4", 90, 76},
		{"1", "4", 93, 72}, {"2", "3", 75, 80}, {"2", "1", 79, 84}, {"4", "3", 70, 86},
	}
	games := make([]*store.Game, 0, len(results))
	for i, r := range results {
		games = append(games, playedGame(i+1, r.home, r.away, 3*i, r.homeScore, r.awayScore))
	}
	return games
}

func TestTrainAndPredict(t *testing.T) {
	history := seasonHistory()
	model, err := Train(history, Config{LongDays: 45, ShortDays: 10})
	require.NoError(t, err)
	require.Len(t, model.Coefficients(), featureCount)

	margin := model.PredictMargin(history, "1", "4", seasonStart.AddDate(0, 0, 70))
	require.False(t, math.IsNaN(margin))

	rmse, accuracy, err := model.Evaluate(history, history)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(rmse))
	assert.GreaterOrEqual(t, accuracy, 0.0)
	assert.LessOrEqual(t, accuracy, 1.0)
}

func TestPredictFixtures(t *testing.T) {
	history := seasonHistory()
	model, err := Train(history, Config{LongDays: 45, ShortDays: 10})
	require.NoError(t, err)

	fixtures := []*store.Game{
		{ID: 100, HomeTeamID: "1", AwayTeamID: "4", Season: 2019, Journey: 11,
			KickoffTime: sql.NullTime{Time: seasonStart.AddDate(0, 0, 70), Valid: true}},
		{ID: 101, HomeTeamID: "2", AwayTeamID: "3", Season: 2019, Journey: 11},
	}

	predictions := model.PredictFixtures(history, fixtures)
	require.Len(t, predictions, 2)
	assert.Equal(t, 100, predictions[0].GameID)
	assert.Equal(t, "margin-ls-45-10", predictions[0].Model)
	assert.Equal(t, 11, predictions[1].Journey)
	assert.False(t, math.IsNaN(predictions[1].PredictedMargin))
}
