package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/jlanza/canasta/internal/scrape"
	"github.com/jlanza/canasta/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// UpsertSummary stores the header data of a scraped game. The imported flag
// is left untouched so re-scraping a header never re-queues the events.
func (r *GameRepository) UpsertSummary(ctx context.Context, g *scrape.GameSummary, season int, phase string) error {
	home := make([]int64, len(g.HomePartials))
	for i, v := range g.HomePartials {
		home[i] = int64(v)
	}
	away := make([]int64, len(g.AwayPartials))
	for i, v := range g.AwayPartials {
		away[i] = int64(v)
	}

	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO games (
			id, home_team_id, away_team_id, season, journey, competition_phase,
			kickoff_time, venue, attendance, score_home, score_away,
			partials_home, partials_away
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			score_home = EXCLUDED.score_home,
			score_away = EXCLUDED.score_away,
			partials_home = EXCLUDED.partials_home,
			partials_away = EXCLUDED.partials_away,
			attendance = EXCLUDED.attendance
	`, g.GameID, g.HomeTeamID, g.AwayTeamID, season, g.Journey, phase,
		nullTime(g.KickoffTime), nullString(g.Venue), nullInt(g.Attendance),
		g.HomeScore, g.AwayScore, pq.Array(home), pq.Array(away))
	if err != nil {
		return fmt.Errorf("upserting game %d: %w", g.GameID, err)
	}
	return nil
}

// MarkImported flags a game whose participants and events are stored.
func (r *GameRepository) MarkImported(ctx context.Context, gameID int) error {
	_, err := r.db.DB().ExecContext(ctx, `
		UPDATE games SET imported = TRUE WHERE id = $1
	`, gameID)
	if err != nil {
		return fmt.Errorf("marking game %d imported: %w", gameID, err)
	}
	return nil
}

// GetByID finds a game by id.
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	game := &store.Game{}
	var home, away pq.Int64Array
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT id, home_team_id, away_team_id, season, journey, competition_phase,
			kickoff_time, venue, attendance, score_home, score_away,
			partials_home, partials_away, imported
		FROM games
		WHERE id = $1
	`, gameID).Scan(
		&game.ID, &game.HomeTeamID, &game.AwayTeamID, &game.Season, &game.Journey,
		&game.CompetitionPhase, &game.KickoffTime, &game.Venue, &game.Attendance,
		&game.ScoreHome, &game.ScoreAway, &home, &away, &game.Imported,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}
	game.PartialsHome = home
	game.PartialsAway = away
	return game, nil
}

// ListBySeason returns the games of one season. Pending-only filters to games
// whose events have not been imported yet.
func (r *GameRepository) ListBySeason(ctx context.Context, season int, pendingOnly bool) ([]*store.Game, error) {
	query := `
		SELECT id, home_team_id, away_team_id, season, journey, competition_phase,
			kickoff_time, venue, attendance, score_home, score_away,
			partials_home, partials_away, imported
		FROM games
		WHERE season = $1
	`
	if pendingOnly {
		query += " AND imported = FALSE"
	}
	query += " ORDER BY journey, id"

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		var home, away pq.Int64Array
		err := rows.Scan(
			&game.ID, &game.HomeTeamID, &game.AwayTeamID, &game.Season, &game.Journey,
			&game.CompetitionPhase, &game.KickoffTime, &game.Venue, &game.Attendance,
			&game.ScoreHome, &game.ScoreAway, &home, &away, &game.Imported,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		game.PartialsHome = home
		game.PartialsAway = away
		games = append(games, game)
	}
	return games, rows.Err()
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(n), Valid: n != 0}
}
