package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jlanza/canasta/internal/store"
	"github.com/jlanza/canasta/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db           *store.Database
	teams        *repository.TeamRepository
	games        *repository.GameRepository
	actors       *repository.ActorRepository
	participants *repository.ParticipantRepository
	events       *repository.EventRepository
	jobs         *repository.JobRepository
	predictions  *repository.PredictionRepository
}

// NewHandler creates a new handler
func NewHandler(db *store.Database) *Handler {
	return &Handler{
		db:           db,
		teams:        repository.NewTeamRepository(db),
		games:        repository.NewGameRepository(db),
		actors:       repository.NewActorRepository(db),
		participants: repository.NewParticipantRepository(db),
		events:       repository.NewEventRepository(db),
		jobs:         repository.NewJobRepository(db),
		predictions:  repository.NewPredictionRepository(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unreachable", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "canasta",
	})
}

// GetTeams returns every stored club
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

// GetTeam returns a specific club by ID
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	team, err := h.teams.GetByID(r.Context(), vars["teamID"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// GetGamesBySeason returns the games of one season. ?pending=true narrows to
// games not yet imported.
func (h *Handler) GetGamesBySeason(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid season", err)
		return
	}
	pendingOnly := r.URL.Query().Get("pending") == "true"

	games, err := h.games.ListBySeason(r.Context(), season, pendingOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetGame returns a specific game by ID
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	game, err := h.games.GetByID(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetGameBoxScore returns the participant lines of a game
func (h *Handler) GetGameBoxScore(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	lines, err := h.participants.ListByGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch box score", err)
		return
	}

	respondJSON(w, http.StatusOK, lines)
}

// GetGameEvents returns the attributed play-by-play of a game
func (h *Handler) GetGameEvents(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	events, err := h.events.ListByGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch events", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// GetGameShots returns the shot chart of a game
func (h *Handler) GetGameShots(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID")
	if !ok {
		return
	}

	shots, err := h.events.ListShotsByGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch shots", err)
		return
	}

	respondJSON(w, http.StatusOK, shots)
}

// GetActor returns one actor by category and ID
func (h *Handler) GetActor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	actorID, err := strconv.Atoi(vars["actorID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid actor ID", err)
		return
	}

	actor, err := h.actors.GetByID(r.Context(), actorID, vars["category"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Actor not found", err)
		return
	}

	respondJSON(w, http.StatusOK, actor)
}

// GetActorNames returns every observed spelling of one actor
func (h *Handler) GetActorNames(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	actorID, err := strconv.Atoi(vars["actorID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid actor ID", err)
		return
	}

	names, err := h.actors.ListNames(r.Context(), actorID, vars["category"])
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch names", err)
		return
	}

	respondJSON(w, http.StatusOK, names)
}

// GetPredictions returns the latest forecast per game of one journey
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid season", err)
		return
	}
	journey, err := strconv.Atoi(r.URL.Query().Get("journey"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid journey", err)
		return
	}

	predictions, err := h.predictions.ListByJourney(r.Context(), season, journey)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch predictions", err)
		return
	}

	respondJSON(w, http.StatusOK, predictions)
}

// GetJobs returns the most recent import jobs
func (h *Handler) GetJobs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	jobs, err := h.jobs.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch jobs", err)
		return
	}

	respondJSON(w, http.StatusOK, jobs)
}

// pathInt parses an integer path variable, responding 400 on garbage.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return value, true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
