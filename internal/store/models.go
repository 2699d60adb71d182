package store

import (
	"database/sql"
	"time"
)

// Team is a club. The league identifies clubs by id, never by name; names
// change across seasons (and sponsors).
type Team struct {
	ID          string        `json:"id" db:"id"`
	FoundedYear sql.NullInt32 `json:"founded_year,omitempty" db:"founded_year"`
}

// TeamName binds one display name to a club for one season.
type TeamName struct {
	ID     int    `json:"id" db:"id"`
	TeamID string `json:"team_id" db:"team_id"`
	Name   string `json:"name" db:"name"`
	Season int    `json:"season" db:"season"`
}

// Actor is a stable identity of a player, coach or referee.
type Actor struct {
	ID          int            `json:"id" db:"id"`
	Category    string         `json:"category" db:"category"`
	DisplayName sql.NullString `json:"display_name,omitempty" db:"display_name"`
}

// ActorName is one observed spelling of an actor within a team/season scope.
type ActorName struct {
	ID       int    `json:"id" db:"id"`
	ActorID  int    `json:"actor_id" db:"actor_id"`
	Category string `json:"category" db:"category"`
	TeamID   string `json:"team_id" db:"team_id"`
	Season   int    `json:"season" db:"season"`
	Name     string `json:"name" db:"name"`
}

// Game holds the header data of one game.
type Game struct {
	ID               int            `json:"id" db:"id"`
	HomeTeamID       string         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID       string         `json:"away_team_id" db:"away_team_id"`
	Season           int            `json:"season" db:"season"`
	Journey          int            `json:"journey" db:"journey"`
	CompetitionPhase sql.NullString `json:"competition_phase,omitempty" db:"competition_phase"`
	KickoffTime      sql.NullTime   `json:"kickoff_time,omitempty" db:"kickoff_time"`
	Venue            sql.NullString `json:"venue,omitempty" db:"venue"`
	Attendance       sql.NullInt32  `json:"attendance,omitempty" db:"attendance"`
	ScoreHome        sql.NullInt32  `json:"score_home,omitempty" db:"score_home"`
	ScoreAway        sql.NullInt32  `json:"score_away,omitempty" db:"score_away"`
	PartialsHome     []int64        `json:"partials_home,omitempty" db:"partials_home"`
	PartialsAway     []int64        `json:"partials_away,omitempty" db:"partials_away"`
	Imported         bool           `json:"imported" db:"imported"`
}

// Participant is one box-score line of one game.
type Participant struct {
	ID             int            `json:"id" db:"id"`
	GameID         int            `json:"game_id" db:"game_id"`
	TeamID         sql.NullString `json:"team_id,omitempty" db:"team_id"`
	ActorID        int            `json:"actor_id" db:"actor_id"`
	Category       string         `json:"category" db:"category"`
	DisplayName    string         `json:"display_name" db:"display_name"`
	IsStarter      bool           `json:"is_starter" db:"is_starter"`
	Jersey         int            `json:"jersey" db:"jersey"`
	Seconds        int            `json:"seconds" db:"seconds"`
	Points         int            `json:"points" db:"points"`
	TwoMade        int            `json:"t2" db:"t2"`
	TwoAttempted   int            `json:"t2_attempt" db:"t2_attempt"`
	ThreeMade      int            `json:"t3" db:"t3"`
	ThreeAttempted int            `json:"t3_attempt" db:"t3_attempt"`
	OneMade        int            `json:"t1" db:"t1"`
	OneAttempted   int            `json:"t1_attempt" db:"t1_attempt"`
	DefReb         int            `json:"reb_def" db:"reb_def"`
	OffReb         int            `json:"reb_off" db:"reb_off"`
	Assists        int            `json:"assist" db:"assist"`
	Steals         int            `json:"steal" db:"steal"`
	Turnovers      int            `json:"turnover" db:"turnover"`
	Counterattacks int            `json:"counterattack" db:"counterattack"`
	Blocks         int            `json:"block" db:"block"`
	BlocksReceived int            `json:"block_rv" db:"block_rv"`
	Dunks          int            `json:"dunk" db:"dunk"`
	Fouls          int            `json:"foul" db:"foul"`
	FoulsReceived  int            `json:"foul_rv" db:"foul_rv"`
	PlusMinus      int            `json:"plus_minus" db:"plus_minus"`
	Efficiency     int            `json:"efficiency" db:"efficiency"`
}

// Shot is one shot-chart marker of one game.
type Shot struct {
	ID        int            `json:"id" db:"id"`
	GameID    int            `json:"game_id" db:"game_id"`
	TeamID    sql.NullString `json:"team_id,omitempty" db:"team_id"`
	ActorID   sql.NullInt32  `json:"actor_id,omitempty" db:"actor_id"`
	Jersey    int            `json:"jersey" db:"jersey"`
	Made      bool           `json:"made" db:"made"`
	Period    string         `json:"period" db:"period"`
	Shot      string         `json:"shot" db:"shot"`
	ShotType  sql.NullString `json:"shot_type,omitempty" db:"shot_type"`
	BottomPct float64        `json:"bottom_pct" db:"bottom_pct"`
	LeftPct   float64        `json:"left_pct" db:"left_pct"`
}

// Prediction is one stored margin forecast for an upcoming game.
type Prediction struct {
	ID              int       `json:"id" db:"id"`
	GameID          int       `json:"game_id" db:"game_id"`
	Season          int       `json:"season" db:"season"`
	Journey         int       `json:"journey" db:"journey"`
	HomeTeamID      string    `json:"home_team_id" db:"home_team_id"`
	AwayTeamID      string    `json:"away_team_id" db:"away_team_id"`
	PredictedMargin float64   `json:"predicted_margin" db:"predicted_margin"`
	Model           string    `json:"model" db:"model"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ImportJob tracks one pipeline stage run for a season.
type ImportJob struct {
	ID         int            `json:"id" db:"id"`
	Season     int            `json:"season" db:"season"`
	Stage      string         `json:"stage" db:"stage"`
	Status     string         `json:"status" db:"status"`
	GamesTotal int            `json:"games_total" db:"games_total"`
	GamesDone  int            `json:"games_done" db:"games_done"`
	LastError  sql.NullString `json:"last_error,omitempty" db:"last_error"`
	StartedAt  time.Time      `json:"started_at" db:"started_at"`
	FinishedAt sql.NullTime   `json:"finished_at,omitempty" db:"finished_at"`
}
