package repository

import (
	"context"
	"fmt"

	"github.com/jlanza/canasta/internal/attribute"
	"github.com/jlanza/canasta/internal/scrape"
	"github.com/jlanza/canasta/internal/store"
)

// EventRepository handles attributed-event and shot-chart data access
type EventRepository struct {
	db *store.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *store.Database) *EventRepository {
	return &EventRepository{db: db}
}

// ReplaceForGame stores a game's attributed events in a single transaction,
// replacing any earlier import. A failed attribution therefore never leaves a
// half-written game behind.
func (r *EventRepository) ReplaceForGame(ctx context.Context, gameID int, events []attribute.AttributedEvent) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning event insert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("clearing events of game %d: %w", gameID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (
			event_id, game_id, team_id, actor_id, display_name, jersey,
			legend, extra_info, elapsed_time, home_score, away_score
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	if err != nil {
		return fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err := stmt.ExecContext(ctx,
			ev.EventID, ev.GameID, nullString(ev.TeamID), nullInt(ev.ActorID),
			nullString(ev.DisplayName), ev.Jersey, ev.Legend,
			nullString(ev.ExtraInfo), ev.Elapsed, ev.HomeScore, ev.AwayScore,
		)
		if err != nil {
			return fmt.Errorf("inserting event %d of game %d: %w", ev.EventID, gameID, err)
		}
	}

	return tx.Commit()
}

// ListByGame returns a game's attributed events in chronological order.
func (r *EventRepository) ListByGame(ctx context.Context, gameID int) ([]attribute.AttributedEvent, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT event_id, game_id, COALESCE(team_id, ''), COALESCE(actor_id, 0),
			COALESCE(display_name, ''), jersey, legend, COALESCE(extra_info, ''),
			elapsed_time, home_score, away_score
		FROM events
		WHERE game_id = $1
		ORDER BY event_id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []attribute.AttributedEvent
	for rows.Next() {
		var ev attribute.AttributedEvent
		err := rows.Scan(
			&ev.EventID, &ev.GameID, &ev.TeamID, &ev.ActorID, &ev.DisplayName,
			&ev.Jersey, &ev.Legend, &ev.ExtraInfo, &ev.Elapsed,
			&ev.HomeScore, &ev.AwayScore,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ReplaceShotsForGame stores a game's shot markers in one transaction.
func (r *EventRepository) ReplaceShotsForGame(ctx context.Context, gameID int, homeTeamID, awayTeamID string, markers []scrape.ShotMarker, actorIDs []int) error {
	if len(actorIDs) != len(markers) {
		return fmt.Errorf("game %d: %d markers but %d actor ids", gameID, len(markers), len(actorIDs))
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning shot insert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shots WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("clearing shots of game %d: %w", gameID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shots (
			game_id, team_id, actor_id, jersey, made, period,
			shot, shot_type, bottom_pct, left_pct
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return fmt.Errorf("preparing shot insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range markers {
		teamID := homeTeamID
		if m.Side == attribute.SideAway {
			teamID = awayTeamID
		}
		_, err := stmt.ExecContext(ctx,
			gameID, teamID, nullInt(actorIDs[i]), m.Jersey, m.Made, m.Period,
			m.Shot, nullString(m.ShotType), m.BottomPct, m.LeftPct,
		)
		if err != nil {
			return fmt.Errorf("inserting shot %d of game %d: %w", i, gameID, err)
		}
	}

	return tx.Commit()
}

// ListShotsByGame returns a game's stored shot markers.
func (r *EventRepository) ListShotsByGame(ctx context.Context, gameID int) ([]*store.Shot, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, game_id, team_id, actor_id, jersey, made, period,
			COALESCE(shot, ''), shot_type, bottom_pct, left_pct
		FROM shots
		WHERE game_id = $1
		ORDER BY id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying shots: %w", err)
	}
	defer rows.Close()

	var shots []*store.Shot
	for rows.Next() {
		s := &store.Shot{}
		err := rows.Scan(
			&s.ID, &s.GameID, &s.TeamID, &s.ActorID, &s.Jersey, &s.Made,
			&s.Period, &s.Shot, &s.ShotType, &s.BottomPct, &s.LeftPct,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning shot: %w", err)
		}
		shots = append(shots, s)
	}
	return shots, rows.Err()
}
