package scrape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlanza/canasta/internal/reconcile"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	doc, err := ParseHTML(string(data))
	require.NoError(t, err)
	return doc
}

func TestParseSeasonTeams(t *testing.T) {
	doc := loadFixture(t, "teams.html")

	teams, err := ParseSeasonTeams(doc, 2019)
	require.NoError(t, err)
	require.Len(t, teams, 3)

	assert.Equal(t, TeamEntry{ID: "3", Name: "KIROLBET Baskonia"}, teams[0])
	assert.Equal(t, TeamEntry{ID: "14", Name: "Unicaja"}, teams[1])
	assert.Equal(t, TeamEntry{ID: "2", Name: "Barça"}, teams[2])

	// No club links for a season the page does not list.
	_, err = ParseSeasonTeams(doc, 2007)
	assert.Error(t, err)
}

func TestParseRoster(t *testing.T) {
	doc := loadFixture(t, "roster.html")

	roster, err := ParseRoster(doc, "roster-3.html")
	require.NoError(t, err)

	require.Len(t, roster.Players, 4)
	assert.Equal(t, reconcile.RawNamePair{ID: 20212, Name: "Smith, J.", SourcePage: "roster-3.html"}, roster.Players[0])
	assert.Equal(t, reconcile.RawNamePair{ID: 20213, Name: "Jones, A.", SourcePage: "roster-3.html"}, roster.Players[1])
	// Youth squad grid and departed-players table both contribute.
	assert.Equal(t, 20990, roster.Players[2].ID)
	assert.Equal(t, reconcile.RawNamePair{ID: 20300, Name: "Departed, X.", SourcePage: "roster-3.html"}, roster.Players[3])

	require.Len(t, roster.Coaches, 2)
	assert.Equal(t, 30001, roster.Coaches[0].ID)
	assert.Equal(t, "Entrenador, M.", roster.Coaches[0].Name)
	assert.Equal(t, reconcile.RawNamePair{ID: 30002, Name: "Antiguo, T.", SourcePage: "roster-3.html"}, roster.Coaches[1])
}
