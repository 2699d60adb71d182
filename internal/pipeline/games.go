package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/jlanza/canasta/internal/fetch"
	"github.com/jlanza/canasta/internal/scrape"
)

const (
	phaseRegular = "regular"
	phasePlayoff = "playoff"
)

// importGames walks the season's journeys and upserts every game header.
// Already-imported games keep their flag; re-running refreshes scores only.
func (r *Runner) importGames(ctx context.Context, spec JobSpec, reporter Reporter) error {
	html, err := r.fetcher.FetchPage(ctx, fetch.JourneysURL(spec.Season))
	if err != nil {
		return fmt.Errorf("fetching journey index: %w", err)
	}
	doc, err := scrape.ParseHTML(html)
	if err != nil {
		return fmt.Errorf("parsing journey index: %w", err)
	}
	journeys, err := scrape.ParseJourneyIDs(doc)
	if err != nil {
		return fmt.Errorf("parsing journey index: %w", err)
	}

	numbers := make([]int, 0, len(journeys))
	for number := range journeys {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	jobID, err := r.jobs.Create(ctx, spec.Season, string(StageGames), len(numbers))
	if err != nil {
		return err
	}
	if reporter != nil {
		reporter.OnStageStart(StageGames, len(numbers))
	}

	regular, err := r.regularJourneys(ctx, spec.Season)
	if err != nil {
		return r.fail(ctx, jobID, err)
	}

	total := len(numbers)
	for i, number := range numbers {
		if err := ctx.Err(); err != nil {
			return r.fail(ctx, jobID, err)
		}

		phase := phaseRegular
		if regular > 0 && number > regular {
			phase = phasePlayoff
		}

		count, err := r.importJourney(ctx, spec.Season, journeys[number], phase)
		if err != nil {
			return r.fail(ctx, jobID, fmt.Errorf("journey %d: %w", number, err))
		}

		r.step(ctx, jobID, i+1)
		if reporter != nil {
			reporter.OnProgress(fmt.Sprintf("✓ Journey %d complete (%d games)", number, count), i+1, total)
		}
	}

	return r.jobs.Complete(ctx, jobID, nil)
}

func (r *Runner) importJourney(ctx context.Context, season int, journeyID, phase string) (int, error) {
	html, err := r.fetcher.FetchPage(ctx, fetch.JourneyURL(season, journeyID))
	if err != nil {
		return 0, fmt.Errorf("fetching journey page: %w", err)
	}

	ids := scrape.ParseJourneyGameIDs(html)
	for _, gameID := range ids {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		url := fetch.GameURL(gameID)
		page, err := r.fetcher.FetchPage(ctx, url)
		if err != nil {
			return 0, fmt.Errorf("fetching game %d: %w", gameID, err)
		}
		doc, err := scrape.ParseHTML(page)
		if err != nil {
			return 0, fmt.Errorf("parsing game %d: %w", gameID, err)
		}
		summary, err := scrape.ParseGameSummary(doc, gameID)
		if err != nil {
			return 0, fmt.Errorf("parsing game %d: %w", gameID, err)
		}
		if err := r.games.UpsertSummary(ctx, summary, season, phase); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// regularJourneys derives the length of the regular phase from the club
// count: a double round-robin plays 2*(n-1) journeys. Returns 0 when the
// clubs are not stored yet, which classifies everything as regular.
func (r *Runner) regularJourneys(ctx context.Context, season int) (int, error) {
	names, err := r.teams.NamesForSeason(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("counting clubs: %w", err)
	}
	if len(names) < 2 {
		return 0, nil
	}
	return 2 * (len(names) - 1), nil
}
