package repository

import (
	"context"
	"fmt"

	"github.com/jlanza/canasta/internal/store"
)

// ParticipantRepository handles box-score data access
type ParticipantRepository struct {
	db *store.Database
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *store.Database) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// ReplaceForGame stores the participants of one game in a single
// transaction, replacing any earlier import of the same game.
func (r *ParticipantRepository) ReplaceForGame(ctx context.Context, gameID int, participants []*store.Participant) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning participant insert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("clearing participants of game %d: %w", gameID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO participants (
			game_id, team_id, actor_id, category, display_name, is_starter,
			jersey, seconds, points,
			t2, t2_attempt, t3, t3_attempt, t1, t1_attempt,
			reb_def, reb_off, assist, steal, turnover, counterattack,
			block, block_rv, dunk, foul, foul_rv, plus_minus, efficiency
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	`)
	if err != nil {
		return fmt.Errorf("preparing participant insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range participants {
		_, err := stmt.ExecContext(ctx,
			gameID, p.TeamID, p.ActorID, p.Category, p.DisplayName, p.IsStarter,
			p.Jersey, p.Seconds, p.Points,
			p.TwoMade, p.TwoAttempted, p.ThreeMade, p.ThreeAttempted, p.OneMade, p.OneAttempted,
			p.DefReb, p.OffReb, p.Assists, p.Steals, p.Turnovers, p.Counterattacks,
			p.Blocks, p.BlocksReceived, p.Dunks, p.Fouls, p.FoulsReceived, p.PlusMinus, p.Efficiency,
		)
		if err != nil {
			return fmt.Errorf("inserting participant %q of game %d: %w", p.DisplayName, gameID, err)
		}
	}

	return tx.Commit()
}

// ListByGame returns the box-score lines of one game.
func (r *ParticipantRepository) ListByGame(ctx context.Context, gameID int) ([]*store.Participant, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, game_id, team_id, actor_id, category, display_name, is_starter,
			jersey, seconds, points,
			t2, t2_attempt, t3, t3_attempt, t1, t1_attempt,
			reb_def, reb_off, assist, steal, turnover, counterattack,
			block, block_rv, dunk, foul, foul_rv, plus_minus, efficiency
		FROM participants
		WHERE game_id = $1
		ORDER BY id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying participants: %w", err)
	}
	defer rows.Close()

	var participants []*store.Participant
	for rows.Next() {
		p := &store.Participant{}
		err := rows.Scan(
			&p.ID, &p.GameID, &p.TeamID, &p.ActorID, &p.Category, &p.DisplayName, &p.IsStarter,
			&p.Jersey, &p.Seconds, &p.Points,
			&p.TwoMade, &p.TwoAttempted, &p.ThreeMade, &p.ThreeAttempted, &p.OneMade, &p.OneAttempted,
			&p.DefReb, &p.OffReb, &p.Assists, &p.Steals, &p.Turnovers, &p.Counterattacks,
			&p.Blocks, &p.BlocksReceived, &p.Dunks, &p.Fouls, &p.FoulsReceived, &p.PlusMinus, &p.Efficiency,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
