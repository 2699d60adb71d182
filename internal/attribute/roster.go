package attribute

import "github.com/jlanza/canasta/internal/reconcile"

// ResolvedRoster holds the game's actor <-> display-name mapping per side,
// built from the participant import before attribution runs. Read-only during
// attribution except for variants discovered in-game, which are appended so
// later events resolve exactly.
type ResolvedRoster struct {
	sides map[TeamSide]*sideRoster
}

type sideRoster struct {
	teamID string
	names  []string // insertion order feeds fuzzy candidate ordering
	ids    map[string]reconcile.Identity
}

// NewResolvedRoster creates an empty roster with the two team sides bound to
// their team ids.
func NewResolvedRoster(homeTeamID, awayTeamID string) *ResolvedRoster {
	return &ResolvedRoster{
		sides: map[TeamSide]*sideRoster{
			SideHome: {teamID: homeTeamID, ids: make(map[string]reconcile.Identity)},
			SideAway: {teamID: awayTeamID, ids: make(map[string]reconcile.Identity)},
		},
	}
}

// Add binds a display name to an identity on one side.
func (r *ResolvedRoster) Add(side TeamSide, name string, id reconcile.Identity) {
	sr, ok := r.sides[side]
	if !ok {
		return
	}
	if _, exists := sr.ids[name]; !exists {
		sr.names = append(sr.names, name)
	}
	sr.ids[name] = id
}

// TeamID returns the team id bound to side, or "" for the neutral side.
func (r *ResolvedRoster) TeamID(side TeamSide) string {
	if sr, ok := r.sides[side]; ok {
		return sr.teamID
	}
	return ""
}

// Lookup resolves name exactly on one side.
func (r *ResolvedRoster) Lookup(side TeamSide, name string) (reconcile.Identity, bool) {
	sr, ok := r.sides[side]
	if !ok {
		return reconcile.Identity{}, false
	}
	id, ok := sr.ids[name]
	return id, ok
}

// Names returns the display names known on one side, in insertion order.
func (r *ResolvedRoster) Names(side TeamSide) []string {
	if sr, ok := r.sides[side]; ok {
		return sr.names
	}
	return nil
}
