// Package pipeline drives the season import: teams and rosters first, then
// game headers, then per-game box scores and attributed events, then shot
// charts. Stages run in order and a failed batch aborts the run so it can be
// re-run after patching the override table.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/jlanza/canasta/internal/attribute"
	"github.com/jlanza/canasta/internal/reconcile"
	"github.com/jlanza/canasta/internal/store"
	"github.com/jlanza/canasta/internal/store/repository"
)

// Stage identifies one phase of a season import.
type Stage string

const (
	StageTeams  Stage = "teams"
	StageGames  Stage = "games"
	StageEvents Stage = "events"
	StageShots  Stage = "shots"
)

// AllStages returns the stages in import order.
func AllStages() []Stage {
	return []Stage{StageTeams, StageGames, StageEvents, StageShots}
}

// JobSpec describes one import run. Season is the site's temporada id;
// EditionID is the legacy competition edition the live-feed host keys its
// archive pages by. An empty Stages runs everything.
type JobSpec struct {
	Season    int
	EditionID int
	Stages    []Stage
	GameIDs   []int
	DryRun    bool
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec)
	OnStageStart(stage Stage, total int)
	OnGameProcessed(gameID int)
	OnProgress(message string, current int, total int)
	OnJobComplete()
	OnJobError(err error)
}

// PageFetcher downloads static league pages.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// PageRenderer loads script-driven pages through a browser.
type PageRenderer interface {
	RenderPage(ctx context.Context, url string) (string, error)
}

// Publisher forwards attributed events and quality reports downstream.
// The redis stream publisher implements it.
type Publisher interface {
	PublishAttributedEvents(ctx context.Context, gameID int, events []attribute.AttributedEvent) error
	PublishQualityReport(ctx context.Context, report *attribute.QualityReport) error
}

// Runner executes import specs against the league site and the store.
type Runner struct {
	fetcher  PageFetcher
	renderer PageRenderer

	teams        *repository.TeamRepository
	games        *repository.GameRepository
	actors       *repository.ActorRepository
	participants *repository.ParticipantRepository
	events       *repository.EventRepository
	jobs         *repository.JobRepository

	overrides reconcile.Overrides
	patches   *attribute.PatchList
	publisher Publisher
}

// NewRunner constructs a runner. The renderer may be nil when the shots stage
// is not going to run; publisher may be nil to disable streaming.
func NewRunner(db *store.Database, fetcher PageFetcher, renderer PageRenderer, overrides reconcile.Overrides, patches *attribute.PatchList, publisher Publisher) *Runner {
	return &Runner{
		fetcher:      fetcher,
		renderer:     renderer,
		teams:        repository.NewTeamRepository(db),
		games:        repository.NewGameRepository(db),
		actors:       repository.NewActorRepository(db),
		participants: repository.NewParticipantRepository(db),
		events:       repository.NewEventRepository(db),
		jobs:         repository.NewJobRepository(db),
		overrides:    overrides,
		patches:      patches,
		publisher:    publisher,
	}
}

// Run executes the job spec, reporting progress via the Reporter if provided.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) error {
	if reporter != nil {
		reporter.OnJobStart(spec)
	}

	if spec.DryRun {
		if reporter != nil {
			reporter.OnProgress("Dry-run mode: no data will be written", 0, 0)
			reporter.OnJobComplete()
		}
		return nil
	}

	index, err := r.actors.LoadIndex(ctx, spec.Season)
	if err != nil {
		if reporter != nil {
			reporter.OnJobError(err)
		}
		return fmt.Errorf("loading name index for season %d: %w", spec.Season, err)
	}

	stages := spec.Stages
	if len(stages) == 0 {
		stages = AllStages()
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch stage {
		case StageTeams:
			err = r.importTeams(ctx, spec, index, reporter)
		case StageGames:
			err = r.importGames(ctx, spec, reporter)
		case StageEvents:
			err = r.importEvents(ctx, spec, index, reporter)
		case StageShots:
			err = r.importShots(ctx, spec, index, reporter)
		default:
			err = fmt.Errorf("unsupported stage %s", stage)
		}
		if err != nil {
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return err
		}
	}

	if reporter != nil {
		reporter.OnJobComplete()
	}
	return nil
}

// fail marks the job row failed and returns err unchanged.
func (r *Runner) fail(ctx context.Context, jobID int, err error) error {
	if cerr := r.jobs.Complete(ctx, jobID, err); cerr != nil {
		log.Printf("⚠️  recording job %d failure: %v", jobID, cerr)
	}
	return err
}

func (r *Runner) step(ctx context.Context, jobID, done int) {
	if err := r.jobs.UpdateProgress(ctx, jobID, done); err != nil {
		log.Printf("⚠️  updating job %d progress: %v", jobID, err)
	}
}
