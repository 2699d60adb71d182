package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlanza/canasta/internal/attribute"
)

func TestParseShotChart(t *testing.T) {
	doc := loadFixture(t, "shotchart.html")

	markers, err := ParseShotChart(doc)
	require.NoError(t, err)
	require.Len(t, markers, 3)

	// Markers come back in chronological order, oldest first.
	layup := markers[0]
	assert.Equal(t, attribute.SideHome, layup.Side)
	assert.True(t, layup.Made)
	assert.Equal(t, "1", layup.Period)
	assert.Equal(t, 7, layup.Jersey)
	assert.Equal(t, "Smith, J.", layup.Player)
	assert.Equal(t, "2PT", layup.Shot)
	assert.Equal(t, "Bandeja", layup.ShotType)
	assert.InDelta(t, 12.3, layup.BottomPct, 0.001)
	assert.InDelta(t, 45.6, layup.LeftPct, 0.001)

	// A dunk title has no range prefix; it is always a two-point shot.
	dunk := markers[1]
	assert.Equal(t, "2PT", dunk.Shot)
	assert.Equal(t, "Mate", dunk.ShotType)
	assert.Equal(t, "Brown, K.", dunk.Player)

	miss := markers[2]
	assert.Equal(t, attribute.SideAway, miss.Side)
	assert.False(t, miss.Made)
	assert.Equal(t, "2", miss.Period)
	assert.Equal(t, "3PT", miss.Shot)
	assert.Empty(t, miss.ShotType)
}

func TestParseShotChartEmpty(t *testing.T) {
	doc, err := ParseHTML("<html><body><span class='titulo'>vacío</span></body></html>")
	require.NoError(t, err)

	_, err = ParseShotChart(doc)
	assert.Error(t, err)
}
