package pipeline

import (
	"context"
	"fmt"

	"github.com/jlanza/canasta/internal/fetch"
	"github.com/jlanza/canasta/internal/reconcile"
	"github.com/jlanza/canasta/internal/scrape"
)

// importTeams loads the season's clubs, stores their names, and reconciles
// every roster so the name index covers the squads before any game runs.
func (r *Runner) importTeams(ctx context.Context, spec JobSpec, index *reconcile.NameIndex, reporter Reporter) error {
	html, err := r.fetcher.FetchPage(ctx, fetch.TeamsURL(spec.Season))
	if err != nil {
		return fmt.Errorf("fetching club index: %w", err)
	}
	doc, err := scrape.ParseHTML(html)
	if err != nil {
		return fmt.Errorf("parsing club index: %w", err)
	}
	entries, err := scrape.ParseSeasonTeams(doc, spec.Season)
	if err != nil {
		return fmt.Errorf("parsing club index: %w", err)
	}

	jobID, err := r.jobs.Create(ctx, spec.Season, string(StageTeams), len(entries))
	if err != nil {
		return err
	}
	if reporter != nil {
		reporter.OnStageStart(StageTeams, len(entries))
	}

	rec := reconcile.NewReconciler(index, r.overrides)
	total := len(entries)
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return r.fail(ctx, jobID, err)
		}
		if reporter != nil {
			reporter.OnProgress(fmt.Sprintf("Processing club %s (%d/%d)", entry.Name, i+1, total), i, total)
		}

		if err := r.importTeam(ctx, spec.Season, entry, rec); err != nil {
			return r.fail(ctx, jobID, fmt.Errorf("club %s: %w", entry.ID, err))
		}

		r.step(ctx, jobID, i+1)
		if reporter != nil {
			reporter.OnProgress(fmt.Sprintf("✓ Club %s complete", entry.Name), i+1, total)
		}
	}

	return r.jobs.Complete(ctx, jobID, nil)
}

func (r *Runner) importTeam(ctx context.Context, season int, entry scrape.TeamEntry, rec *reconcile.Reconciler) error {
	if err := r.teams.Upsert(ctx, entry.ID); err != nil {
		return err
	}
	if err := r.teams.UpsertName(ctx, entry.ID, entry.Name, season); err != nil {
		return err
	}

	url := fetch.RosterURL(entry.ID, season)
	html, err := r.fetcher.FetchPage(ctx, url)
	if err != nil {
		return fmt.Errorf("fetching roster: %w", err)
	}
	doc, err := scrape.ParseHTML(html)
	if err != nil {
		return fmt.Errorf("parsing roster: %w", err)
	}
	roster, err := scrape.ParseRoster(doc, url)
	if err != nil {
		return fmt.Errorf("parsing roster: %w", err)
	}

	if _, err := rec.ReconcileBatch(ctx, reconcile.CategoryPlayer, entry.ID, season, roster.Players); err != nil {
		return err
	}
	if len(roster.Coaches) > 0 {
		if _, err := rec.ReconcileBatch(ctx, reconcile.CategoryCoach, entry.ID, season, roster.Coaches); err != nil {
			return err
		}
	}
	return nil
}
