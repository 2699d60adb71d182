package attribute

// TeamSide tags which bench a raw event belongs to. Timeouts and period
// boundaries come through as neutral.
type TeamSide string

const (
	SideHome    TeamSide = "home"
	SideAway    TeamSide = "away"
	SideNeutral TeamSide = "neutral"
)

// RawEvent is one play-by-play line as scraped from the source markup. The
// source lists events newest-first; Sequence preserves that source position.
type RawEvent struct {
	Sequence int
	Side     TeamSide
	Action   string // raw action text, e.g. "Canasta de 2 (Bandeja)"
	Period   string // "1".."4" for regulation, "E2" style for overtime
	Clock    string // remaining time within the period, "mm:ss"
	Player   string // raw player fragment, empty for team-level events
	Jersey   int
	Score    string // embedded score marker "54-49", empty when absent
}

// AttributedEvent is the structured record emitted for one raw event.
// Immutable once created; append-only per game.
type AttributedEvent struct {
	EventID     int    `json:"event_id" db:"event_id"`
	GameID      int    `json:"game_id" db:"game_id"`
	TeamID      string `json:"team_id,omitempty" db:"team_id"`
	ActorID     int    `json:"actor_id,omitempty" db:"actor_id"`
	DisplayName string `json:"display_name,omitempty" db:"display_name"`
	Jersey      int    `json:"jersey,omitempty" db:"jersey"`
	Legend      string `json:"legend" db:"legend"`
	ExtraInfo   string `json:"extra_info,omitempty" db:"extra_info"`
	Elapsed     int    `json:"elapsed_time" db:"elapsed_time"`
	HomeScore   int    `json:"home_score" db:"home_score"`
	AwayScore   int    `json:"away_score" db:"away_score"`
}

// RosterWarning records a non-fatal on-court inconsistency found during
// attribution. Known source-data defects are corrected afterwards via the
// patch list, never re-derived here.
type RosterWarning struct {
	Sequence int      `json:"sequence"`
	Side     TeamSide `json:"side"`
	Message  string   `json:"message"`
}

// QualityReport is the batch-level quality summary for one game.
type QualityReport struct {
	GameID   int             `json:"game_id"`
	Events   int             `json:"events"`
	Warnings []RosterWarning `json:"warnings,omitempty"`
}
