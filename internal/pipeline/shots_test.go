package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlanza/canasta/internal/attribute"
	"github.com/jlanza/canasta/internal/reconcile"
	"github.com/jlanza/canasta/internal/scrape"
	"github.com/jlanza/canasta/internal/store"
)

func TestResolveShotActors(t *testing.T) {
	ctx := context.Background()
	index := reconcile.NewNameIndex(nil)

	register := func(id int, name, teamID string) {
		err := index.Register(ctx, reconcile.Identity{ID: id, Category: reconcile.CategoryPlayer}, name, teamID, 2019)
		require.NoError(t, err)
	}
	register(1001, "Smith, J.", "3")
	register(2001, "Doe, John", "7")

	g := &store.Game{ID: 18102, HomeTeamID: "3", AwayTeamID: "7"}
	markers := []scrape.ShotMarker{
		{Side: attribute.SideHome, Player: "Smith, J."},
		{Side: attribute.SideAway, Player: "Doe"},
		{Side: attribute.SideHome, Player: "Nadie, Q."},
		{Side: attribute.SideHome},
	}

	assert.Equal(t, []int{1001, 2001, 0, 0}, resolveShotActors(ctx, index, 2019, g, markers))
}

func TestResolveShotActorsScopesBySide(t *testing.T) {
	ctx := context.Background()
	index := reconcile.NewNameIndex(nil)
	err := index.Register(ctx, reconcile.Identity{ID: 1001, Category: reconcile.CategoryPlayer}, "Smith, J.", "3", 2019)
	require.NoError(t, err)

	g := &store.Game{ID: 18102, HomeTeamID: "3", AwayTeamID: "7"}
	markers := []scrape.ShotMarker{
		{Side: attribute.SideAway, Player: "Smith, J."},
	}

	// The name exists, but only on the home roster.
	assert.Equal(t, []int{0}, resolveShotActors(ctx, index, 2019, g, markers))
}
