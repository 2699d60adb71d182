package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSetRatioIgnoresTokenOrder(t *testing.T) {
	score := TokenSetRatio("Smith, J.", "J. Smith")
	assert.Equal(t, 100, score)
}

func TestTokenSetRatioIgnoresCase(t *testing.T) {
	assert.Equal(t, 100, TokenSetRatio("LANDING SANÉ", "Landing Sané"))
}

func TestTokenSetRatioContractedName(t *testing.T) {
	// The referee case that motivated fuzzy matching in the first place:
	// the contracted form must clear the people threshold.
	score := TokenSetRatio("Aliaga, Jordi", "Jordi Aliaga Sole")
	assert.Greater(t, score, DefaultThreshold)
}

func TestTokenSetRatioUnrelatedNames(t *testing.T) {
	score := TokenSetRatio("Doornekamp, Aaron", "Vives, Quino")
	assert.Less(t, score, 50)
}

func TestBestMatchDeterministic(t *testing.T) {
	candidates := []string{"Smith, J.", "Jones, A.", "Smythe, J."}

	name1, score1, err := BestMatch("J. Smith", candidates)
	require.NoError(t, err)
	name2, score2, err := BestMatch("J. Smith", candidates)
	require.NoError(t, err)

	assert.Equal(t, name1, name2)
	assert.Equal(t, score1, score2)
	assert.Equal(t, "Smith, J.", name1)
	assert.Greater(t, score1, 90)
}

func TestBestMatchTieBreaksOnInputOrder(t *testing.T) {
	// Both candidates score identically against the query; the first wins.
	name, _, err := BestMatch("zz", []string{"first", "tsrif"})
	require.NoError(t, err)
	assert.Equal(t, "first", name)
}

func TestBestMatchEmptyCandidates(t *testing.T) {
	_, _, err := BestMatch("anyone", nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}
