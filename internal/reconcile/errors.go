package reconcile

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by NameIndex lookups when no variant matches the
// exact name within the requested team/season scope.
var ErrNotFound = errors.New("name not found in index")

// ErrNoCandidates is returned by BestMatch when the candidate set is empty.
var ErrNoCandidates = errors.New("no candidates to match against")

// DuplicateIdentityError reports a display name claimed by two different
// actors within the same team/season scope. It aborts the whole batch.
type DuplicateIdentityError struct {
	Name       string
	Category   Category
	TeamID     string
	Season     int
	ExistingID int
	NewID      int
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("duplicate identity for %q (%s, team %s, season %d): claimed by both %d and %d",
		e.Name, e.Category, e.TeamID, e.Season, e.ExistingID, e.NewID)
}

// MissingActorNameError reports an id-less observation that could not be
// resolved by exact lookup, override table, or fuzzy matching.
type MissingActorNameError struct {
	Name     string
	Category Category
	TeamID   string
	Season   int
	Batch    []RawNamePair
}

func (e *MissingActorNameError) Error() string {
	return fmt.Sprintf("unresolvable actor %q (%s, team %s, season %d) among %d observations",
		e.Name, e.Category, e.TeamID, e.Season, len(e.Batch))
}

// NoConfidentMatchError carries the full context of a fuzzy-match attempt that
// fell below the caller's threshold, so the batch can be patched manually via
// the override tables.
type NoConfidentMatchError struct {
	Query     string
	Best      string
	Score     int
	Threshold int
}

func (e *NoConfidentMatchError) Error() string {
	return fmt.Sprintf("no confident match for %q: best candidate %q scored %d (threshold %d)",
		e.Query, e.Best, e.Score, e.Threshold)
}
