package repository

import (
	"context"
	"fmt"

	"github.com/jlanza/canasta/internal/store"
)

// PredictionRepository stores margin forecasts.
type PredictionRepository struct {
	db *store.Database
}

// NewPredictionRepository creates a new prediction repository.
func NewPredictionRepository(db *store.Database) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Insert appends one forecast. Re-predicting a game keeps the history; the
// latest row wins for readers.
func (r *PredictionRepository) Insert(ctx context.Context, p *store.Prediction) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO predictions (
			game_id, season, journey, home_team_id, away_team_id,
			predicted_margin, model
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.GameID, p.Season, p.Journey, p.HomeTeamID, p.AwayTeamID, p.PredictedMargin, p.Model)
	if err != nil {
		return fmt.Errorf("inserting prediction for game %d: %w", p.GameID, err)
	}
	return nil
}

// ListByJourney returns the latest forecast per game of one journey.
func (r *PredictionRepository) ListByJourney(ctx context.Context, season, journey int) ([]*store.Prediction, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT DISTINCT ON (game_id)
			id, game_id, season, journey, home_team_id, away_team_id,
			predicted_margin, model, created_at
		FROM predictions
		WHERE season = $1 AND journey = $2
		ORDER BY game_id, created_at DESC
	`, season, journey)
	if err != nil {
		return nil, fmt.Errorf("querying predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*store.Prediction
	for rows.Next() {
		p := &store.Prediction{}
		if err := rows.Scan(
			&p.ID, &p.GameID, &p.Season, &p.Journey, &p.HomeTeamID, &p.AwayTeamID,
			&p.PredictedMargin, &p.Model, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}
