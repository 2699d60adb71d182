package predict

import (
	"time"

	"github.com/jlanza/canasta/internal/store"
)

// featureCount is the regression width: an intercept plus win rate and
// average margin for each side over each of the two windows.
const featureCount = 9

// form is one club's record inside a trailing window.
type form struct {
	winRate float64
	diffAvg float64
}

// formBefore computes teamID's record over the games that kicked off within
// the window closing at cutoff. Clubs with no game in the window get an even
// record, which keeps early-season rows usable.
func formBefore(history []*store.Game, teamID string, cutoff time.Time, days int) form {
	window := time.Duration(days) * 24 * time.Hour

	var played, won, diff int
	for _, g := range history {
		if !g.KickoffTime.Valid || !g.ScoreHome.Valid || !g.ScoreAway.Valid {
			continue
		}
		kickoff := g.KickoffTime.Time
		if !kickoff.Before(cutoff) || cutoff.Sub(kickoff) > window {
			continue
		}

		margin := int(g.ScoreHome.Int32) - int(g.ScoreAway.Int32)
		switch teamID {
		case g.HomeTeamID:
		case g.AwayTeamID:
			margin = -margin
		default:
			continue
		}

		played++
		diff += margin
		if margin > 0 {
			won++
		}
	}

	if played == 0 {
		return form{winRate: 0.5}
	}
	return form{
		winRate: float64(won) / float64(played),
		diffAvg: float64(diff) / float64(played),
	}
}

func featureVector(history []*store.Game, homeID, awayID string, kickoff time.Time, cfg Config) []float64 {
	out := make([]float64, 0, featureCount)
	out = append(out, 1)
	for _, days := range []int{cfg.LongDays, cfg.ShortDays} {
		home := formBefore(history, homeID, kickoff, days)
		away := formBefore(history, awayID, kickoff, days)
		out = append(out, home.winRate, home.diffAvg, away.winRate, away.diffAvg)
	}
	return out
}
