package reconcile

import (
	"context"
	"log"
)

// DefaultThreshold is the minimum accepted fuzzy score for roster
// reconciliation. A best match must score strictly above it.
const DefaultThreshold = 75

// RawNamePair is one (id, name) observation scraped from a page. ID 0 means
// the page linked the actor without an id; Name may be blank when the page
// carried the id but no text.
type RawNamePair struct {
	ID         int
	Name       string
	SourcePage string
}

// ResolvedActor binds one observed display name to its identity.
type ResolvedActor struct {
	Identity Identity
	Name     string
}

// Reconciler turns heterogeneous (id, name) observations for one
// team/season/category into a canonical identity set.
//
// Failure is per batch: a DuplicateIdentityError, MissingActorNameError or
// NoConfidentMatchError aborts the whole team/season batch and nothing is
// registered, so a failed batch can be re-run after patching the override
// table.
type Reconciler struct {
	index     *NameIndex
	overrides Overrides
	threshold int
}

// NewReconciler creates a reconciler with the default fuzzy threshold.
func NewReconciler(index *NameIndex, overrides Overrides) *Reconciler {
	return &Reconciler{
		index:     index,
		overrides: overrides,
		threshold: DefaultThreshold,
	}
}

// SetThreshold overrides the minimum fuzzy score (exclusive).
func (r *Reconciler) SetThreshold(threshold int) {
	r.threshold = threshold
}

// ReconcileBatch resolves every observation in pairs and registers the
// resulting name variants. The returned set contains one entry per unique
// actor id, first-seen name wins. Re-running the same batch yields the same
// set: exact lookups, the override table and the deterministic matcher leave
// no room for drift.
func (r *Reconciler) ReconcileBatch(ctx context.Context, category Category, teamID string, season int, pairs []RawNamePair) ([]ResolvedActor, error) {
	// accepted keeps insertion order: candidate ordering feeds the fuzzy
	// matcher and ties break on first-seen.
	acceptedIDs := make(map[string]int)
	var acceptedNames []string
	var invalid []string
	seenInvalid := make(map[string]struct{})

	accept := func(name string, id int) {
		if _, ok := acceptedIDs[name]; !ok {
			acceptedNames = append(acceptedNames, name)
		}
		acceptedIDs[name] = id
	}

	// Partition and direct-accept.
	for _, pair := range pairs {
		if pair.ID != 0 {
			if pair.Name == "" {
				// Partial record: the id appeared elsewhere with a name.
				if hasNamedTwin(pairs, pair.ID) {
					continue
				}
				name, err := r.index.NameFor(ctx, Identity{ID: pair.ID, Category: category})
				if err != nil {
					return nil, &MissingActorNameError{
						Name:     "",
						Category: category,
						TeamID:   teamID,
						Season:   season,
						Batch:    pairs,
					}
				}
				accept(name, pair.ID)
				continue
			}

			if id, ok := r.overrides.Lookup(season, teamID, pair.Name); ok {
				accept(pair.Name, id)
				continue
			}

			if existing, ok := acceptedIDs[pair.Name]; ok && existing != pair.ID {
				return nil, &DuplicateIdentityError{
					Name:       pair.Name,
					Category:   category,
					TeamID:     teamID,
					Season:     season,
					ExistingID: existing,
					NewID:      pair.ID,
				}
			}
			accept(pair.Name, pair.ID)
			continue
		}

		// id 0: overridden, junk, or queued for indirect resolution.
		if id, ok := r.overrides.Lookup(season, teamID, pair.Name); ok {
			accept(pair.Name, id)
			continue
		}
		if pair.Name == "" {
			continue
		}
		if _, ok := seenInvalid[pair.Name]; !ok {
			seenInvalid[pair.Name] = struct{}{}
			invalid = append(invalid, pair.Name)
		}
	}

	// Indirect resolution: exact index lookup first.
	var unresolved []string
	for _, name := range invalid {
		if _, ok := acceptedIDs[name]; ok {
			continue
		}
		id, err := r.index.LookupExact(ctx, name, category, teamID, season)
		if err == nil {
			accept(name, id.ID)
			continue
		}
		if err != ErrNotFound {
			return nil, err
		}
		unresolved = append(unresolved, name)
	}

	// Then fuzzy matching against the accepted names.
	for _, name := range unresolved {
		candidates := make([]string, 0, len(acceptedNames))
		for _, n := range acceptedNames {
			if n != name {
				candidates = append(candidates, n)
			}
		}

		best, score, err := BestMatch(name, candidates)
		if err == ErrNoCandidates {
			return nil, &MissingActorNameError{
				Name:     name,
				Category: category,
				TeamID:   teamID,
				Season:   season,
				Batch:    pairs,
			}
		}
		if err != nil {
			return nil, err
		}
		if score <= r.threshold {
			return nil, &NoConfidentMatchError{
				Query:     name,
				Best:      best,
				Score:     score,
				Threshold: r.threshold,
			}
		}

		log.Printf("  ⚠️  actor %q matched to %q with score %d (team %s, season %d)", name, best, score, teamID, season)
		accept(name, acceptedIDs[best])
	}

	// Merge: one identity per unique id, and register every variant.
	resolved := make([]ResolvedActor, 0, len(acceptedNames))
	seenIDs := make(map[int]struct{})
	for _, name := range acceptedNames {
		id := Identity{ID: acceptedIDs[name], Category: category}
		if err := r.index.Register(ctx, id, name, teamID, season); err != nil {
			return nil, err
		}
		if _, ok := seenIDs[id.ID]; ok {
			continue
		}
		seenIDs[id.ID] = struct{}{}
		resolved = append(resolved, ResolvedActor{Identity: id, Name: name})
	}
	return resolved, nil
}

// hasNamedTwin reports whether any pair carries the same id with a non-blank
// name.
func hasNamedTwin(pairs []RawNamePair, id int) bool {
	for _, p := range pairs {
		if p.ID == id && p.Name != "" {
			return true
		}
	}
	return false
}
