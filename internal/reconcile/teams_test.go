package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTeamResolver() *TeamResolver {
	names := []string{"KIROLBET Baskonia", "Real Madrid", "Divina Seguros Joventut"}
	ids := map[string]string{
		"KIROLBET Baskonia":       "3",
		"Real Madrid":             "1",
		"Divina Seguros Joventut": "9",
	}
	return NewTeamResolver(names, ids)
}

func TestTeamResolverExact(t *testing.T) {
	id, err := newTestTeamResolver().Resolve("Real Madrid")
	require.NoError(t, err)
	assert.Equal(t, "1", id)
}

func TestTeamResolverSponsorDrift(t *testing.T) {
	// The feed drops the sponsor prefix the club page carries.
	id, err := newTestTeamResolver().Resolve("Baskonia")
	require.NoError(t, err)
	assert.Equal(t, "3", id)

	id, err = newTestTeamResolver().Resolve("Joventut")
	require.NoError(t, err)
	assert.Equal(t, "9", id)
}

func TestTeamResolverNoConfidentMatch(t *testing.T) {
	_, err := newTestTeamResolver().Resolve("Unicaja")
	require.Error(t, err)

	var matchErr *NoConfidentMatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, "Unicaja", matchErr.Query)
}
