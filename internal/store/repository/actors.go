package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jlanza/canasta/internal/reconcile"
	"github.com/jlanza/canasta/internal/store"
)

// ActorRepository handles actor and name-variant data access. It implements
// reconcile.VariantStore so the name index persists through it.
type ActorRepository struct {
	db *store.Database
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *store.Database) *ActorRepository {
	return &ActorRepository{db: db}
}

// LookupVariant returns the actor id bound to the exact name within the
// team/season scope, or reconcile.ErrNotFound.
func (r *ActorRepository) LookupVariant(ctx context.Context, name string, category reconcile.Category, teamID string, season int) (int, error) {
	query := `
		SELECT actor_id
		FROM actor_names
		WHERE category = $1 AND team_id = $2 AND season = $3 AND name = $4
	`

	var actorID int
	err := r.db.DB().QueryRowContext(ctx, query, string(category), teamID, season, name).Scan(&actorID)
	if err == sql.ErrNoRows {
		return 0, reconcile.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("querying actor name: %w", err)
	}
	return actorID, nil
}

// InsertVariant appends a name variant; re-inserting the same binding is a
// no-op. The actor row is created alongside so variants never dangle.
func (r *ActorRepository) InsertVariant(ctx context.Context, id reconcile.Identity, name, teamID string, season int) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning variant insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO actors (id, category)
		VALUES ($1, $2)
		ON CONFLICT (id, category) DO NOTHING
	`, id.ID, string(id.Category))
	if err != nil {
		return fmt.Errorf("upserting actor %d: %w", id.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO actor_names (actor_id, category, team_id, season, name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, team_id, season, name) DO NOTHING
	`, id.ID, string(id.Category), teamID, season, name)
	if err != nil {
		return fmt.Errorf("inserting name variant %q: %w", name, err)
	}

	return tx.Commit()
}

// LoadIndex hydrates a NameIndex with every stored variant of one season, so
// imports resume against the names of already-processed teams.
func (r *ActorRepository) LoadIndex(ctx context.Context, season int) (*reconcile.NameIndex, error) {
	query := `
		SELECT actor_id, category, team_id, name
		FROM actor_names
		WHERE season = $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying actor names: %w", err)
	}
	defer rows.Close()

	index := reconcile.NewNameIndex(r)
	for rows.Next() {
		var an store.ActorName
		if err := rows.Scan(&an.ActorID, &an.Category, &an.TeamID, &an.Name); err != nil {
			return nil, fmt.Errorf("scanning actor name: %w", err)
		}
		id := reconcile.Identity{ID: an.ActorID, Category: reconcile.Category(an.Category)}
		if err := index.Register(ctx, id, an.Name, an.TeamID, season); err != nil {
			return nil, fmt.Errorf("hydrating index: %w", err)
		}
	}
	return index, rows.Err()
}

// GetByID finds an actor by id and category.
func (r *ActorRepository) GetByID(ctx context.Context, actorID int, category string) (*store.Actor, error) {
	query := `
		SELECT id, category, display_name
		FROM actors
		WHERE id = $1 AND category = $2
	`

	actor := &store.Actor{}
	err := r.db.DB().QueryRowContext(ctx, query, actorID, category).Scan(
		&actor.ID, &actor.Category, &actor.DisplayName,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("actor not found: %d (%s)", actorID, category)
	}
	if err != nil {
		return nil, fmt.Errorf("querying actor: %w", err)
	}
	return actor, nil
}

// ListNames returns the stored spellings of one actor across seasons.
func (r *ActorRepository) ListNames(ctx context.Context, actorID int, category string) ([]*store.ActorName, error) {
	query := `
		SELECT id, actor_id, category, team_id, season, name
		FROM actor_names
		WHERE actor_id = $1 AND category = $2
		ORDER BY season, team_id, name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, actorID, category)
	if err != nil {
		return nil, fmt.Errorf("querying actor names: %w", err)
	}
	defer rows.Close()

	var names []*store.ActorName
	for rows.Next() {
		an := &store.ActorName{}
		if err := rows.Scan(&an.ID, &an.ActorID, &an.Category, &an.TeamID, &an.Season, &an.Name); err != nil {
			return nil, fmt.Errorf("scanning actor name: %w", err)
		}
		names = append(names, an)
	}
	return names, rows.Err()
}

// SetDisplayName records the canonical display name of an actor.
func (r *ActorRepository) SetDisplayName(ctx context.Context, actorID int, category, name string) error {
	_, err := r.db.DB().ExecContext(ctx, `
		UPDATE actors SET display_name = $3 WHERE id = $1 AND category = $2
	`, actorID, category, name)
	if err != nil {
		return fmt.Errorf("updating actor %d: %w", actorID, err)
	}
	return nil
}
