package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlanza/canasta/internal/reconcile"
	"github.com/jlanza/canasta/internal/scrape"
)

type recordingReporter struct {
	started   bool
	completed bool
	messages  []string
	errs      []error
}

func (r *recordingReporter) OnJobStart(JobSpec)      { r.started = true }
func (r *recordingReporter) OnStageStart(Stage, int) {}
func (r *recordingReporter) OnGameProcessed(int)     {}
func (r *recordingReporter) OnJobComplete()          { r.completed = true }
func (r *recordingReporter) OnJobError(err error)    { r.errs = append(r.errs, err) }
func (r *recordingReporter) OnProgress(msg string, _, _ int) {
	r.messages = append(r.messages, msg)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil, nil, nil)
	reporter := &recordingReporter{}

	err := runner.Run(context.Background(), JobSpec{Season: 2019, DryRun: true}, reporter)
	require.NoError(t, err)

	assert.True(t, reporter.started)
	assert.True(t, reporter.completed)
	assert.Empty(t, reporter.errs)
	require.Len(t, reporter.messages, 1)
	assert.Contains(t, reporter.messages[0], "Dry-run")
}

func TestParticipantRow(t *testing.T) {
	line := scrape.BoxLine{
		ActorID:   20210,
		Name:      "Smith, J.",
		Category:  reconcile.CategoryPlayer,
		IsStarter: true,
		Jersey:    9,
		Seconds:   25*60 + 30,
		Points:    17,
		TwoMade:   4, TwoAttempted: 7,
		ThreeMade: 2, ThreeAttempted: 5,
		OneMade: 3, OneAttempted: 4,
		DefReb: 5, OffReb: 2,
		Assists:    6,
		PlusMinus:  -3,
		Efficiency: 21,
	}

	p := participantRow(18102, "3", line)
	assert.Equal(t, 18102, p.GameID)
	assert.Equal(t, "3", p.TeamID.String)
	assert.True(t, p.TeamID.Valid)
	assert.Equal(t, 20210, p.ActorID)
	assert.Equal(t, "player", p.Category)
	assert.True(t, p.IsStarter)
	assert.Equal(t, 25*60+30, p.Seconds)
	assert.Equal(t, 7, p.TwoAttempted)
	assert.Equal(t, -3, p.PlusMinus)
}

func TestParticipantRowTeamBench(t *testing.T) {
	p := participantRow(18102, "7", scrape.BoxLine{ActorID: scrape.TeamBench, Name: "Equipo"})
	assert.Equal(t, scrape.TeamBench, p.ActorID)
	assert.Equal(t, "Equipo", p.DisplayName)
}
