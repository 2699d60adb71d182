package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/jlanza/canasta/internal/attribute"
	"github.com/jlanza/canasta/internal/fetch"
	"github.com/jlanza/canasta/internal/reconcile"
	"github.com/jlanza/canasta/internal/scrape"
	"github.com/jlanza/canasta/internal/store"
)

// importEvents processes every pending game: box score, roster
// reconciliation, play-by-play attribution, and the imported flag. Each game
// is written atomically; a failed game aborts the stage with nothing partial
// stored for it.
func (r *Runner) importEvents(ctx context.Context, spec JobSpec, index *reconcile.NameIndex, reporter Reporter) error {
	pending, err := r.pendingGames(ctx, spec, true)
	if err != nil {
		return err
	}
	feeds, err := r.feedIDs(ctx, spec, pending)
	if err != nil {
		return err
	}

	jobID, err := r.jobs.Create(ctx, spec.Season, string(StageEvents), len(pending))
	if err != nil {
		return err
	}
	if reporter != nil {
		reporter.OnStageStart(StageEvents, len(pending))
	}

	total := len(pending)
	for i, g := range pending {
		if err := ctx.Err(); err != nil {
			return r.fail(ctx, jobID, err)
		}
		if reporter != nil {
			reporter.OnProgress(fmt.Sprintf("Processing game %d (%d/%d)", g.ID, i+1, total), i, total)
		}

		if err := r.importGame(ctx, spec.Season, index, g, feeds[g.ID]); err != nil {
			return r.fail(ctx, jobID, fmt.Errorf("game %d: %w", g.ID, err))
		}

		r.step(ctx, jobID, i+1)
		if reporter != nil {
			reporter.OnGameProcessed(g.ID)
			reporter.OnProgress(fmt.Sprintf("✓ Game %d complete", g.ID), i+1, total)
		}
	}

	return r.jobs.Complete(ctx, jobID, nil)
}

// pendingGames resolves the work list: explicit game ids when the spec names
// them, otherwise the season's games filtered by the imported flag.
func (r *Runner) pendingGames(ctx context.Context, spec JobSpec, pendingOnly bool) ([]*store.Game, error) {
	if len(spec.GameIDs) == 0 {
		return r.games.ListBySeason(ctx, spec.Season, pendingOnly)
	}

	games := make([]*store.Game, 0, len(spec.GameIDs))
	for _, id := range spec.GameIDs {
		g, err := r.games.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("game %d not stored, run the games stage first: %w", id, err)
		}
		games = append(games, g)
	}
	return games, nil
}

// feedIDs maps stored game ids to their live-feed ids by walking the legacy
// results archive of every journey the work list touches.
func (r *Runner) feedIDs(ctx context.Context, spec JobSpec, games []*store.Game) (map[int]string, error) {
	journeys := make(map[int]struct{})
	for _, g := range games {
		journeys[g.Journey] = struct{}{}
	}
	numbers := make([]int, 0, len(journeys))
	for number := range journeys {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	feeds := make(map[int]string)
	for _, number := range numbers {
		html, err := r.fetcher.FetchPage(ctx, fetch.ResultsArchiveURL(spec.EditionID, number))
		if err != nil {
			return nil, fmt.Errorf("fetching results archive of journey %d: %w", number, err)
		}
		for feedID, code := range scrape.ParseFeedIDs(html) {
			gameID, err := strconv.Atoi(code)
			if err != nil {
				continue
			}
			feeds[gameID] = feedID
		}
	}
	return feeds, nil
}

func (r *Runner) importGame(ctx context.Context, season int, index *reconcile.NameIndex, g *store.Game, feedID string) error {
	url := fetch.GameURL(g.ID)
	html, err := r.fetcher.FetchPage(ctx, url)
	if err != nil {
		return fmt.Errorf("fetching stats page: %w", err)
	}
	doc, err := scrape.ParseHTML(html)
	if err != nil {
		return fmt.Errorf("parsing stats page: %w", err)
	}
	box, err := scrape.ParseBoxScore(doc, url)
	if err != nil {
		return fmt.Errorf("parsing box score: %w", err)
	}

	rec := reconcile.NewReconciler(index, r.overrides)
	roster := attribute.NewResolvedRoster(g.HomeTeamID, g.AwayTeamID)

	var participants []*store.Participant
	sides := []struct {
		side   attribute.TeamSide
		teamID string
		lines  []scrape.BoxLine
	}{
		{attribute.SideHome, g.HomeTeamID, box.Home},
		{attribute.SideAway, g.AwayTeamID, box.Away},
	}
	for _, s := range sides {
		rows, err := r.resolveSide(ctx, rec, index, season, g.ID, s.side, s.teamID, s.lines, roster)
		if err != nil {
			return err
		}
		participants = append(participants, rows...)
	}

	if len(box.Referees) > 0 {
		if _, err := rec.ReconcileBatch(ctx, reconcile.CategoryReferee, refereePool, season, box.Referees); err != nil {
			return err
		}
	}

	if err := r.participants.ReplaceForGame(ctx, g.ID, participants); err != nil {
		return err
	}

	if feedID == "" {
		log.Printf("⚠️  game %d has no live feed, stored without events", g.ID)
		return r.games.MarkImported(ctx, g.ID)
	}

	page, err := r.fetcher.FetchPage(ctx, fetch.PlayByPlayURL(feedID))
	if err != nil {
		return fmt.Errorf("fetching live feed %s: %w", feedID, err)
	}
	feedDoc, err := scrape.ParseHTML(page)
	if err != nil {
		return fmt.Errorf("parsing live feed %s: %w", feedID, err)
	}
	raw, err := scrape.ParsePlayByPlay(feedDoc)
	if err != nil {
		return fmt.Errorf("parsing live feed %s: %w", feedID, err)
	}

	attributor := attribute.NewAttributor(roster, index, season)
	events, report, err := attributor.ProcessGame(ctx, g.ID, raw)
	if err != nil {
		return err
	}
	if r.patches != nil {
		events = r.patches.Apply(g.ID, events)
	}

	if err := r.events.ReplaceForGame(ctx, g.ID, events); err != nil {
		return err
	}

	if r.publisher != nil {
		if err := r.publisher.PublishAttributedEvents(ctx, g.ID, events); err != nil {
			log.Printf("⚠️  publishing events of game %d failed: %v", g.ID, err)
		}
		if err := r.publisher.PublishQualityReport(ctx, report); err != nil {
			log.Printf("⚠️  publishing quality report of game %d failed: %v", g.ID, err)
		}
	}
	for _, w := range report.Warnings {
		log.Printf("⚠️  game %d event %d (%s): %s", g.ID, w.Sequence, w.Side, w.Message)
	}

	return r.games.MarkImported(ctx, g.ID)
}

// refereePool scopes referee name variants: the crew belongs to the league,
// not to either club.
const refereePool = "0"

// resolveSide reconciles one side's box lines and materializes them as
// participant rows, feeding the game roster along the way.
func (r *Runner) resolveSide(ctx context.Context, rec *reconcile.Reconciler, index *reconcile.NameIndex, season, gameID int, side attribute.TeamSide, teamID string, lines []scrape.BoxLine, roster *attribute.ResolvedRoster) ([]*store.Participant, error) {
	var players, coaches []reconcile.RawNamePair
	for _, line := range lines {
		if line.ActorID == scrape.TeamBench {
			continue
		}
		pair := reconcile.RawNamePair{ID: line.ActorID, Name: line.Name}
		if line.Category == reconcile.CategoryCoach {
			coaches = append(coaches, pair)
		} else {
			players = append(players, pair)
		}
	}

	if len(players) > 0 {
		if _, err := rec.ReconcileBatch(ctx, reconcile.CategoryPlayer, teamID, season, players); err != nil {
			return nil, err
		}
	}
	if len(coaches) > 0 {
		if _, err := rec.ReconcileBatch(ctx, reconcile.CategoryCoach, teamID, season, coaches); err != nil {
			return nil, err
		}
	}

	rows := make([]*store.Participant, 0, len(lines))
	for _, line := range lines {
		p := participantRow(gameID, teamID, line)
		if line.ActorID != scrape.TeamBench {
			id, err := index.LookupExact(ctx, line.Name, line.Category, teamID, season)
			if err != nil {
				return nil, fmt.Errorf("resolving %q on team %s: %w", line.Name, teamID, err)
			}
			p.ActorID = id.ID
			roster.Add(side, line.Name, id)
		}
		rows = append(rows, p)
	}
	return rows, nil
}

func participantRow(gameID int, teamID string, line scrape.BoxLine) *store.Participant {
	return &store.Participant{
		GameID:         gameID,
		TeamID:         sql.NullString{String: teamID, Valid: teamID != ""},
		ActorID:        line.ActorID,
		Category:       string(line.Category),
		DisplayName:    line.Name,
		IsStarter:      line.IsStarter,
		Jersey:         line.Jersey,
		Seconds:        line.Seconds,
		Points:         line.Points,
		TwoMade:        line.TwoMade,
		TwoAttempted:   line.TwoAttempted,
		ThreeMade:      line.ThreeMade,
		ThreeAttempted: line.ThreeAttempted,
		OneMade:        line.OneMade,
		OneAttempted:   line.OneAttempted,
		DefReb:         line.DefReb,
		OffReb:         line.OffReb,
		Assists:        line.Assists,
		Steals:         line.Steals,
		Turnovers:      line.Turnovers,
		Counterattacks: line.Counterattacks,
		Blocks:         line.Blocks,
		BlocksReceived: line.BlocksReceived,
		Dunks:          line.Dunks,
		Fouls:          line.Fouls,
		FoulsReceived:  line.FoulsReceived,
		PlusMinus:      line.PlusMinus,
		Efficiency:     line.Efficiency,
	}
}
