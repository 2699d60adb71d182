package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/jlanza/canasta/internal/attribute"
	"github.com/jlanza/canasta/internal/fetch"
	"github.com/jlanza/canasta/internal/reconcile"
	"github.com/jlanza/canasta/internal/scrape"
	"github.com/jlanza/canasta/internal/store"
)

// ShotMatchThreshold is the minimum fuzzy score for binding a shot marker
// name to a roster player. Markers carry surnames only, so the bar sits far
// below the roster threshold; an unmatched marker keeps actor id 0 and stays
// in the chart.
const ShotMatchThreshold = 40

// importShots renders the shot-chart page of every imported game and stores
// its markers. Needs a renderer: the chart is drawn by script.
func (r *Runner) importShots(ctx context.Context, spec JobSpec, index *reconcile.NameIndex, reporter Reporter) error {
	if r.renderer == nil {
		return fmt.Errorf("shots stage needs a page renderer")
	}

	all, err := r.pendingGames(ctx, spec, false)
	if err != nil {
		return err
	}
	var imported []*store.Game
	for _, g := range all {
		if g.Imported {
			imported = append(imported, g)
		}
	}
	feeds, err := r.feedIDs(ctx, spec, imported)
	if err != nil {
		return err
	}

	jobID, err := r.jobs.Create(ctx, spec.Season, string(StageShots), len(imported))
	if err != nil {
		return err
	}
	if reporter != nil {
		reporter.OnStageStart(StageShots, len(imported))
	}

	total := len(imported)
	for i, g := range imported {
		if err := ctx.Err(); err != nil {
			return r.fail(ctx, jobID, err)
		}

		feedID, ok := feeds[g.ID]
		if !ok {
			log.Printf("⚠️  game %d has no live feed, no shot chart", g.ID)
			r.step(ctx, jobID, i+1)
			continue
		}

		if err := r.importShotChart(ctx, spec.Season, index, g, feedID); err != nil {
			return r.fail(ctx, jobID, fmt.Errorf("game %d: %w", g.ID, err))
		}

		r.step(ctx, jobID, i+1)
		if reporter != nil {
			reporter.OnProgress(fmt.Sprintf("✓ Shot chart of game %d complete", g.ID), i+1, total)
		}
	}

	return r.jobs.Complete(ctx, jobID, nil)
}

func (r *Runner) importShotChart(ctx context.Context, season int, index *reconcile.NameIndex, g *store.Game, feedID string) error {
	html, err := r.renderer.RenderPage(ctx, fetch.ShotChartURL(feedID))
	if err != nil {
		return fmt.Errorf("rendering shot chart %s: %w", feedID, err)
	}
	doc, err := scrape.ParseHTML(html)
	if err != nil {
		return fmt.Errorf("parsing shot chart %s: %w", feedID, err)
	}
	markers, err := scrape.ParseShotChart(doc)
	if err != nil {
		return fmt.Errorf("parsing shot chart %s: %w", feedID, err)
	}

	actorIDs := resolveShotActors(ctx, index, season, g, markers)
	return r.events.ReplaceShotsForGame(ctx, g.ID, g.HomeTeamID, g.AwayTeamID, markers, actorIDs)
}

// resolveShotActors binds each marker to a player of the marker's side.
// Exact lookup first, then fuzzy against the names known for that
// team/season. Misses resolve to 0.
func resolveShotActors(ctx context.Context, index *reconcile.NameIndex, season int, g *store.Game, markers []scrape.ShotMarker) []int {
	ids := make([]int, len(markers))
	for i, m := range markers {
		if m.Player == "" {
			continue
		}
		teamID := g.HomeTeamID
		if m.Side == attribute.SideAway {
			teamID = g.AwayTeamID
		}

		if id, err := index.LookupExact(ctx, m.Player, reconcile.CategoryPlayer, teamID, season); err == nil {
			ids[i] = id.ID
			continue
		}

		names := index.KnownNames(reconcile.CategoryPlayer, teamID, season)
		best, score, err := reconcile.BestMatch(m.Player, names)
		if err != nil || score <= ShotMatchThreshold {
			log.Printf("⚠️  shot by %q in game %d left unmatched", m.Player, g.ID)
			continue
		}
		if id, err := index.LookupExact(ctx, best, reconcile.CategoryPlayer, teamID, season); err == nil {
			ids[i] = id.ID
		}
	}
	return ids
}
