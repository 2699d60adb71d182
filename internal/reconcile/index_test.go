package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameIndexRoundTrip(t *testing.T) {
	ctx := context.Background()
	ix := NewNameIndex(nil)
	id := Identity{ID: 1001, Category: CategoryPlayer}

	require.NoError(t, ix.Register(ctx, id, "Smith, J.", "3", 2018))

	got, err := ix.LookupExact(ctx, "Smith, J.", CategoryPlayer, "3", 2018)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestNameIndexScopedLookup(t *testing.T) {
	ctx := context.Background()
	ix := NewNameIndex(nil)
	id := Identity{ID: 1001, Category: CategoryPlayer}

	require.NoError(t, ix.Register(ctx, id, "Smith, J.", "3", 2018))

	// Same name, different team: must not resolve.
	_, err := ix.LookupExact(ctx, "Smith, J.", CategoryPlayer, "14", 2018)
	assert.ErrorIs(t, err, ErrNotFound)

	// Same name, different season: must not resolve.
	_, err = ix.LookupExact(ctx, "Smith, J.", CategoryPlayer, "3", 2017)
	assert.ErrorIs(t, err, ErrNotFound)

	// Same name, different category: must not resolve.
	_, err = ix.LookupExact(ctx, "Smith, J.", CategoryCoach, "3", 2018)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNameIndexRegisterIdempotent(t *testing.T) {
	ctx := context.Background()
	ix := NewNameIndex(nil)
	id := Identity{ID: 1001, Category: CategoryPlayer}

	require.NoError(t, ix.Register(ctx, id, "Smith, J.", "3", 2018))
	require.NoError(t, ix.Register(ctx, id, "Smith, J.", "3", 2018))

	assert.Len(t, ix.KnownNames(CategoryPlayer, "3", 2018), 1)
}

func TestNameIndexDuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	ix := NewNameIndex(nil)

	require.NoError(t, ix.Register(ctx, Identity{ID: 1001, Category: CategoryPlayer}, "Smith, J.", "3", 2018))

	err := ix.Register(ctx, Identity{ID: 2002, Category: CategoryPlayer}, "Smith, J.", "3", 2018)
	var dup *DuplicateIdentityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1001, dup.ExistingID)
	assert.Equal(t, 2002, dup.NewID)
}

func TestNameIndexNameFor(t *testing.T) {
	ctx := context.Background()
	ix := NewNameIndex(nil)
	id := Identity{ID: 1001, Category: CategoryPlayer}

	require.NoError(t, ix.Register(ctx, id, "Smith, Jerome", "3", 2018))
	require.NoError(t, ix.Register(ctx, id, "J. Smith", "3", 2017))

	// Deterministic across runs: lexicographically smallest variant.
	name, err := ix.NameFor(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "J. Smith", name)

	_, err = ix.NameFor(ctx, Identity{ID: 9999, Category: CategoryPlayer})
	assert.ErrorIs(t, err, ErrNotFound)
}
