package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database represents the canasta PostgreSQL database connection
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase creates a new database connection
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

// migrations are applied in order and tracked in schema_migrations, so
// re-running the importer against an existing database is safe.
var migrations = []struct {
	version string
	sql     string
}{
	{"001_create_teams", `
		CREATE TABLE IF NOT EXISTS teams (
			id TEXT PRIMARY KEY,
			founded_year INT
		)`},
	{"002_create_team_names", `
		CREATE TABLE IF NOT EXISTS team_names (
			id SERIAL PRIMARY KEY,
			team_id TEXT NOT NULL REFERENCES teams(id),
			name TEXT NOT NULL,
			season INT NOT NULL,
			UNIQUE (name, season)
		)`},
	{"003_create_actors", `
		CREATE TABLE IF NOT EXISTS actors (
			id INT NOT NULL,
			category TEXT NOT NULL,
			display_name TEXT,
			PRIMARY KEY (id, category)
		)`},
	{"004_create_actor_names", `
		CREATE TABLE IF NOT EXISTS actor_names (
			id SERIAL PRIMARY KEY,
			actor_id INT NOT NULL,
			category TEXT NOT NULL,
			team_id TEXT NOT NULL,
			season INT NOT NULL,
			name TEXT NOT NULL,
			UNIQUE (category, team_id, season, name)
		)`},
	{"005_create_games", `
		CREATE TABLE IF NOT EXISTS games (
			id INT PRIMARY KEY,
			home_team_id TEXT NOT NULL REFERENCES teams(id),
			away_team_id TEXT NOT NULL REFERENCES teams(id),
			season INT NOT NULL,
			journey INT NOT NULL,
			competition_phase TEXT,
			kickoff_time TIMESTAMPTZ,
			venue TEXT,
			attendance INT,
			score_home INT,
			score_away INT,
			partials_home INT[],
			partials_away INT[],
			imported BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE INDEX IF NOT EXISTS games_season_idx ON games(season)`},
	{"006_create_participants", `
		CREATE TABLE IF NOT EXISTS participants (
			id SERIAL PRIMARY KEY,
			game_id INT NOT NULL REFERENCES games(id),
			team_id TEXT,
			actor_id INT NOT NULL,
			category TEXT NOT NULL,
			display_name TEXT,
			is_starter BOOLEAN,
			jersey INT,
			seconds INT,
			points INT,
			t2 INT, t2_attempt INT,
			t3 INT, t3_attempt INT,
			t1 INT, t1_attempt INT,
			reb_def INT, reb_off INT,
			assist INT, steal INT, turnover INT,
			counterattack INT,
			block INT, block_rv INT,
			dunk INT,
			foul INT, foul_rv INT,
			plus_minus INT,
			efficiency INT
		);
		CREATE INDEX IF NOT EXISTS participants_game_idx ON participants(game_id)`},
	{"007_create_events", `
		CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			event_id INT NOT NULL,
			game_id INT NOT NULL REFERENCES games(id),
			team_id TEXT,
			actor_id INT,
			display_name TEXT,
			jersey INT,
			legend TEXT NOT NULL,
			extra_info TEXT,
			elapsed_time INT NOT NULL,
			home_score INT NOT NULL,
			away_score INT NOT NULL,
			UNIQUE (game_id, event_id)
		)`},
	{"008_create_shots", `
		CREATE TABLE IF NOT EXISTS shots (
			id SERIAL PRIMARY KEY,
			game_id INT NOT NULL REFERENCES games(id),
			team_id TEXT,
			actor_id INT,
			jersey INT,
			made BOOLEAN NOT NULL,
			period TEXT NOT NULL,
			shot TEXT,
			shot_type TEXT,
			bottom_pct DOUBLE PRECISION,
			left_pct DOUBLE PRECISION
		);
		CREATE INDEX IF NOT EXISTS shots_game_idx ON shots(game_id)`},
	{"009_create_import_jobs", `
		CREATE TABLE IF NOT EXISTS import_jobs (
			id SERIAL PRIMARY KEY,
			season INT NOT NULL,
			stage TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			games_total INT NOT NULL DEFAULT 0,
			games_done INT NOT NULL DEFAULT 0,
			last_error TEXT,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			finished_at TIMESTAMPTZ
		)`},
	{"010_create_predictions", `
		CREATE TABLE IF NOT EXISTS predictions (
			id SERIAL PRIMARY KEY,
			game_id INT NOT NULL REFERENCES games(id),
			season INT NOT NULL,
			journey INT NOT NULL,
			home_team_id TEXT NOT NULL,
			away_team_id TEXT NOT NULL,
			predicted_margin DOUBLE PRECISION NOT NULL,
			model TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS predictions_game_idx ON predictions(game_id)`},
}

// Bootstrap creates the schema, applying only versions not seen before.
func (db *Database) Bootstrap() error {
	log.Println("Running database migrations...")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m.version, m.sql); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}

	log.Println("✓ All migrations completed successfully")
	return nil
}

// createMigrationsTable creates a table to track which migrations have been run
func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

// runMigration runs a single migration if it hasn't been applied yet
func (db *Database) runMigration(version, ddl string) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("  ⊘ Skipping %s (already applied)", version)
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(ddl); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", version)
	return nil
}

// HealthCheck performs a health check on the database
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
