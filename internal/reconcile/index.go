package reconcile

import (
	"context"
	"sync"
)

// Category classifies an actor. The league site publishes three kinds of
// people and the same numeric id space is reused per category.
type Category string

const (
	CategoryPlayer  Category = "player"
	CategoryCoach   Category = "coach"
	CategoryReferee Category = "referee"
)

// Identity is a stable internal reference to one real-world actor, distinct
// from any of its observed spellings. Unique per (ID, Category).
type Identity struct {
	ID       int
	Category Category
}

// VariantStore persists name variants. The postgres repository implements it;
// tests use the in-memory index alone.
type VariantStore interface {
	// LookupVariant returns the actor id bound to the exact name within the
	// team/season scope, or ErrNotFound.
	LookupVariant(ctx context.Context, name string, category Category, teamID string, season int) (int, error)

	// InsertVariant appends a name variant. Inserting an existing triple
	// bound to the same actor is a no-op.
	InsertVariant(ctx context.Context, id Identity, name, teamID string, season int) error
}

type variantKey struct {
	category Category
	teamID   string
	season   int
	name     string
}

// NameIndex maintains, per season and category, the mapping from observed
// display names to identities. Lookups are scoped to team+season: a name known
// only in another team or season does not resolve here.
//
// Registration is a single atomic append-or-fail operation so the index can be
// shared between the reconciler and concurrent per-game attribution.
type NameIndex struct {
	mu       sync.Mutex
	store    VariantStore
	variants map[variantKey]Identity
}

// NewNameIndex creates an index backed by the given store. A nil store keeps
// the index purely in memory.
func NewNameIndex(store VariantStore) *NameIndex {
	return &NameIndex{
		store:    store,
		variants: make(map[variantKey]Identity),
	}
}

// LookupExact resolves name within the (category, teamID, season) scope.
// Returns ErrNotFound when the name has never been registered in that scope.
func (ix *NameIndex) LookupExact(ctx context.Context, name string, category Category, teamID string, season int) (Identity, error) {
	key := variantKey{category: category, teamID: teamID, season: season, name: name}

	ix.mu.Lock()
	id, ok := ix.variants[key]
	ix.mu.Unlock()
	if ok {
		return id, nil
	}

	if ix.store == nil {
		return Identity{}, ErrNotFound
	}

	actorID, err := ix.store.LookupVariant(ctx, name, category, teamID, season)
	if err != nil {
		return Identity{}, err
	}

	id = Identity{ID: actorID, Category: category}
	ix.mu.Lock()
	ix.variants[key] = id
	ix.mu.Unlock()
	return id, nil
}

// Register appends a name variant for id. Registering the same triple with
// the same identity is idempotent; with a different identity it fails with a
// DuplicateIdentityError.
func (ix *NameIndex) Register(ctx context.Context, id Identity, name, teamID string, season int) error {
	key := variantKey{category: id.Category, teamID: teamID, season: season, name: name}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if existing, ok := ix.variants[key]; ok {
		if existing == id {
			return nil
		}
		return &DuplicateIdentityError{
			Name:       name,
			Category:   id.Category,
			TeamID:     teamID,
			Season:     season,
			ExistingID: existing.ID,
			NewID:      id.ID,
		}
	}

	if ix.store != nil {
		existingID, err := ix.store.LookupVariant(ctx, name, id.Category, teamID, season)
		switch {
		case err == nil && existingID != id.ID:
			return &DuplicateIdentityError{
				Name:       name,
				Category:   id.Category,
				TeamID:     teamID,
				Season:     season,
				ExistingID: existingID,
				NewID:      id.ID,
			}
		case err == nil:
			// already persisted, cache and return
		case err == ErrNotFound:
			if err := ix.store.InsertVariant(ctx, id, name, teamID, season); err != nil {
				return err
			}
		default:
			return err
		}
	}

	ix.variants[key] = id
	return nil
}

// NameFor returns any registered name for id, regardless of team or season.
// Used to fill in records where a page carried an actor id with no text.
func (ix *NameIndex) NameFor(ctx context.Context, id Identity) (string, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	// Several variants may exist for one id; pick the lexicographically
	// smallest so repeated runs resolve identically.
	var found string
	for key, existing := range ix.variants {
		if existing == id && (found == "" || key.name < found) {
			found = key.name
		}
	}
	if found == "" {
		return "", ErrNotFound
	}
	return found, nil
}

// KnownNames returns the registered names for a scope in no particular order.
// Used by diagnostics and the REST layer, not by resolution.
func (ix *NameIndex) KnownNames(category Category, teamID string, season int) []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var names []string
	for key := range ix.variants {
		if key.category == category && key.teamID == teamID && key.season == season {
			names = append(names, key.name)
		}
	}
	return names
}
