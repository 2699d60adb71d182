// Package predict fits a linear margin model over stored game headers. The
// target is home score minus away score; the features are each side's
// trailing form over a long and a short window. A positive forecast calls a
// home win.
package predict

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/jlanza/canasta/internal/store"
)

// Config sets the two trailing form windows, in days.
type Config struct {
	LongDays  int
	ShortDays int
}

// DefaultConfig covers roughly three months of form against current streaks.
func DefaultConfig() Config {
	return Config{LongDays: 90, ShortDays: 21}
}

// Model holds the fitted regression.
type Model struct {
	cfg    Config
	coeffs *mat.VecDense
}

// Train fits the model by least squares. Games without a kickoff time or a
// final score are skipped; each remaining game is featurized against the
// games played before it, so the fit never sees its own outcome.
func Train(games []*store.Game, cfg Config) (*Model, error) {
	rows := finished(games)
	if len(rows) < featureCount {
		return nil, fmt.Errorf("need at least %d finished games, have %d", featureCount, len(rows))
	}

	x := mat.NewDense(len(rows), featureCount, nil)
	y := mat.NewVecDense(len(rows), nil)
	for i, g := range rows {
		x.SetRow(i, featureVector(rows, g.HomeTeamID, g.AwayTeamID, g.KickoffTime.Time, cfg))
		y.SetVec(i, float64(g.ScoreHome.Int32)-float64(g.ScoreAway.Int32))
	}

	var qr mat.QR
	qr.Factorize(x)
	coeffs := mat.NewVecDense(featureCount, nil)
	if err := qr.SolveVecTo(coeffs, false, y); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("solving least squares: %w", err)
		}
		log.Printf("⚠️  margin model is ill-conditioned: %v", err)
	}

	return &Model{cfg: cfg, coeffs: coeffs}, nil
}

// finished filters to games with a kickoff time and a final score, oldest
// first.
func finished(games []*store.Game) []*store.Game {
	out := make([]*store.Game, 0, len(games))
	for _, g := range games {
		if g.KickoffTime.Valid && g.ScoreHome.Valid && g.ScoreAway.Valid {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].KickoffTime.Time.Before(out[j].KickoffTime.Time)
	})
	return out
}

// PredictMargin forecasts home minus away for one fixture, given the games
// played so far.
func (m *Model) PredictMargin(history []*store.Game, homeID, awayID string, kickoff time.Time) float64 {
	x := mat.NewVecDense(featureCount, featureVector(finished(history), homeID, awayID, kickoff, m.cfg))
	return mat.Dot(x, m.coeffs)
}

// PredictFixtures forecasts every fixture and materializes prediction rows
// ready for storage. Fixtures without a kickoff time are featurized as of
// now.
func (m *Model) PredictFixtures(history, fixtures []*store.Game) []*store.Prediction {
	played := finished(history)
	name := m.Name()

	out := make([]*store.Prediction, 0, len(fixtures))
	for _, g := range fixtures {
		kickoff := time.Now()
		if g.KickoffTime.Valid {
			kickoff = g.KickoffTime.Time
		}
		x := mat.NewVecDense(featureCount, featureVector(played, g.HomeTeamID, g.AwayTeamID, kickoff, m.cfg))
		out = append(out, &store.Prediction{
			GameID:          g.ID,
			Season:          g.Season,
			Journey:         g.Journey,
			HomeTeamID:      g.HomeTeamID,
			AwayTeamID:      g.AwayTeamID,
			PredictedMargin: mat.Dot(x, m.coeffs),
			Model:           name,
		})
	}
	return out
}

// Evaluate reports the root mean squared error over games and the share of
// games whose winner the model calls correctly. history supplies the form
// windows; games supplies the outcomes.
func (m *Model) Evaluate(history, games []*store.Game) (rmse, winAccuracy float64, err error) {
	played := finished(history)

	var squares float64
	var total, correct int
	for _, g := range finished(games) {
		x := mat.NewVecDense(featureCount, featureVector(played, g.HomeTeamID, g.AwayTeamID, g.KickoffTime.Time, m.cfg))
		forecast := mat.Dot(x, m.coeffs)
		actual := float64(g.ScoreHome.Int32) - float64(g.ScoreAway.Int32)

		squares += (forecast - actual) * (forecast - actual)
		if (forecast > 0) == (actual > 0) {
			correct++
		}
		total++
	}
	if total == 0 {
		return 0, 0, fmt.Errorf("no finished games to evaluate")
	}
	return math.Sqrt(squares / float64(total)), float64(correct) / float64(total), nil
}

// Name identifies the fitted configuration, stored next to each forecast.
func (m *Model) Name() string {
	return fmt.Sprintf("margin-ls-%d-%d", m.cfg.LongDays, m.cfg.ShortDays)
}

// Coefficients returns a copy of the fitted weights, intercept first.
func (m *Model) Coefficients() []float64 {
	out := make([]float64, m.coeffs.Len())
	for i := range out {
		out[i] = m.coeffs.AtVec(i)
	}
	return out
}
