package attribute

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionBaseLabels(t *testing.T) {
	cases := []struct {
		raw      string
		code     string
		hasActor bool
	}{
		{"Canasta de 2", ActionMade2, true},
		{"Canasta de 3", ActionMade3, true},
		{"Tiro de 2 fallado", ActionMiss2, true},
		{"Rebote defensivo", ActionRebDef, true},
		{"Rebote ofensivo", ActionRebOff, true},
		{"Asistencia", ActionAssist, true},
		{"Pérdida", ActionTurnover, true},
		{"Entra a pista", ActionSubIn, true},
		{"Se retira", ActionSubOut, true},
		{"Tiempo muerto", ActionTimeout, false},
		{"Inicio del partido", ActionGameStart, false},
		{"Fin de periodo", ActionPeriodEnd, false},
	}
	for _, tc := range cases {
		code, detail, hasActor, err := ParseAction(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.code, code, tc.raw)
		assert.Equal(t, tc.hasActor, hasActor, tc.raw)
		assert.Empty(t, detail, tc.raw)
	}
}

func TestParseActionShotSubType(t *testing.T) {
	code, detail, hasActor, err := ParseAction("Canasta de 2 (Bandeja)")
	require.NoError(t, err)
	assert.Equal(t, ActionMade2, code)
	assert.Equal(t, "layup", detail)
	assert.True(t, hasActor)

	code, detail, _, err = ParseAction("Canasta de 2 (Gancho)")
	require.NoError(t, err)
	assert.Equal(t, ActionMade2, code)
	assert.Equal(t, "hook", detail)

	// Unmapped sub-types pass through lowercased rather than failing.
	code, detail, _, err = ParseAction("Canasta de 3 (Esquina)")
	require.NoError(t, err)
	assert.Equal(t, ActionMade3, code)
	assert.Equal(t, "esquina", detail)
}

func TestParseActionFoulSubType(t *testing.T) {
	code, detail, _, err := ParseAction("Falta personal (Técnica)")
	require.NoError(t, err)
	assert.Equal(t, ActionFoul, code)
	assert.Equal(t, "technical", detail)
}

func TestParseActionFreeThrowCounter(t *testing.T) {
	code, detail, hasActor, err := ParseAction("Tiro libre anotado 2/2")
	require.NoError(t, err)
	assert.Equal(t, ActionMade1, code)
	assert.Equal(t, "2/2", detail)
	assert.True(t, hasActor)

	code, detail, _, err = ParseAction("Tiro libre fallado 1/3")
	require.NoError(t, err)
	assert.Equal(t, ActionMiss1, code)
	assert.Equal(t, "1/3", detail)
}

func TestParseActionCaseInsensitive(t *testing.T) {
	code, _, _, err := ParseAction("CANASTA DE 2")
	require.NoError(t, err)
	assert.Equal(t, ActionMade2, code)
}

func TestParseActionUnknown(t *testing.T) {
	_, _, _, err := ParseAction("Baile del equipo")
	require.Error(t, err)

	var unknown *UnknownActionError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Baile del equipo", unknown.Raw)
}
