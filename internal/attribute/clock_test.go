package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedSecondsRegulation(t *testing.T) {
	cases := []struct {
		clock  string
		period string
		want   int
	}{
		{"10:00", "1", 0},
		{"09:30", "1", 30},
		{"09:10", "1", 50},
		{"00:01", "1", 599},
		{"00:00", "1", 600},
		{"10:00", "2", 600},
		{"05:00", "2", 900},
		{"00:00", "4", 2400},
	}
	for _, tc := range cases {
		got, err := ElapsedSeconds(tc.clock, tc.period)
		require.NoError(t, err, "clock %s period %s", tc.clock, tc.period)
		assert.Equal(t, tc.want, got, "clock %s period %s", tc.clock, tc.period)
	}
}

func TestElapsedSecondsOvertime(t *testing.T) {
	// "E2" labels map onto the fifth block.
	got, err := ElapsedSeconds("10:00", "E2")
	require.NoError(t, err)
	assert.Equal(t, 2400, got)

	got, err = ElapsedSeconds("09:00", "E2")
	require.NoError(t, err)
	assert.Equal(t, 2460, got)
}

func TestElapsedSecondsMonotonicWithinPeriod(t *testing.T) {
	prev := -1
	clocks := []string{"10:00", "09:59", "07:30", "05:00", "02:15", "00:01", "00:00"}
	for _, c := range clocks {
		got, err := ElapsedSeconds(c, "3")
		require.NoError(t, err)
		assert.Greater(t, got, prev, "clock %s", c)
		prev = got
	}
}

func TestElapsedSecondsMalformed(t *testing.T) {
	_, err := ElapsedSeconds("banana", "1")
	assert.Error(t, err)

	_, err = ElapsedSeconds("10:00", "")
	assert.Error(t, err)

	_, err = ElapsedSeconds("10:xx", "1")
	assert.Error(t, err)
}
