package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jlanza/canasta/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Upsert creates the team row if it does not exist yet.
func (r *TeamRepository) Upsert(ctx context.Context, teamID string) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO teams (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, teamID)
	if err != nil {
		return fmt.Errorf("upserting team %s: %w", teamID, err)
	}
	return nil
}

// UpsertName binds a display name to a team for one season. The same name in
// the same season always points at one club.
func (r *TeamRepository) UpsertName(ctx context.Context, teamID, name string, season int) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO team_names (team_id, name, season)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, season) DO UPDATE SET team_id = EXCLUDED.team_id
	`, teamID, name, season)
	if err != nil {
		return fmt.Errorf("upserting team name %q: %w", name, err)
	}
	return nil
}

// SetFoundedYear records the club's foundation year.
func (r *TeamRepository) SetFoundedYear(ctx context.Context, teamID string, year int) error {
	_, err := r.db.DB().ExecContext(ctx, `
		UPDATE teams SET founded_year = $2 WHERE id = $1
	`, teamID, year)
	if err != nil {
		return fmt.Errorf("updating team %s: %w", teamID, err)
	}
	return nil
}

// GetAll returns all known teams.
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, founded_year FROM teams ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		if err := rows.Scan(&team.ID, &team.FoundedYear); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// GetByID finds a team by id.
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*store.Team, error) {
	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT id, founded_year FROM teams WHERE id = $1
	`, teamID).Scan(&team.ID, &team.FoundedYear)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %s", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}
	return team, nil
}

// NamesForSeason returns the season's team names, for the fuzzy team
// resolver's candidate set.
func (r *TeamRepository) NamesForSeason(ctx context.Context, season int) ([]*store.TeamName, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, team_id, name, season
		FROM team_names
		WHERE season = $1
		ORDER BY name
	`, season)
	if err != nil {
		return nil, fmt.Errorf("querying team names: %w", err)
	}
	defer rows.Close()

	var names []*store.TeamName
	for rows.Next() {
		tn := &store.TeamName{}
		if err := rows.Scan(&tn.ID, &tn.TeamID, &tn.Name, &tn.Season); err != nil {
			return nil, fmt.Errorf("scanning team name: %w", err)
		}
		names = append(names, tn)
	}
	return names, rows.Err()
}
