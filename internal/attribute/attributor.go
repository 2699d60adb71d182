package attribute

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jlanza/canasta/internal/reconcile"
)

// AttributionThreshold is the minimum accepted fuzzy score when an in-game
// display name is not present in the resolved roster.
const AttributionThreshold = 72

// playRelevant marks the codes that require five players on court.
var playRelevant = map[string]bool{
	ActionMade1: true, ActionMiss1: true,
	ActionMade2: true, ActionMiss2: true,
	ActionMade3: true, ActionMiss3: true,
	ActionRebDef: true, ActionRebOff: true,
	ActionAssist: true, ActionSteal: true, ActionTurnover: true,
	ActionBlock: true, ActionBlockRv: true, ActionDunk: true,
	ActionFoul: true, ActionFoulRv: true,
}

// Attributor converts one game's raw play-by-play stream into attributed
// events. It is single-use per game: the forward pass keeps stateful
// accumulators (on-court sets, score and clock carry) that must see events in
// true chronological order.
type Attributor struct {
	roster    *ResolvedRoster
	index     *reconcile.NameIndex
	season    int
	threshold int
}

// NewAttributor wires the attributor for one game. The index receives the
// in-game name variants discovered via fuzzy matching so future imports
// resolve them exactly.
func NewAttributor(roster *ResolvedRoster, index *reconcile.NameIndex, season int) *Attributor {
	return &Attributor{
		roster:    roster,
		index:     index,
		season:    season,
		threshold: AttributionThreshold,
	}
}

// ProcessGame runs the forward pass over the game's raw events. The source
// lists events newest-first, so the stream is reversed first and then
// processed strictly in order.
//
// An unresolvable player reference aborts the whole game batch; on-court
// inconsistencies are demoted to warnings on the quality report.
func (a *Attributor) ProcessGame(ctx context.Context, gameID int, raw []RawEvent) ([]AttributedEvent, *QualityReport, error) {
	events := make([]RawEvent, len(raw))
	copy(events, raw)
	reverse(events)

	report := &QualityReport{GameID: gameID}
	onCourt := map[TeamSide]map[int]struct{}{
		SideHome: make(map[int]struct{}),
		SideAway: make(map[int]struct{}),
	}
	subsSeen := map[TeamSide]bool{}

	var out []AttributedEvent
	homeScore, awayScore := 0, 0
	lastElapsed := 0

	for i, ev := range events {
		code, detail, hasActor, err := ParseAction(ev.Action)
		if err != nil {
			return nil, nil, fmt.Errorf("game %d event %d: %w", gameID, ev.Sequence, err)
		}

		elapsed := lastElapsed
		if ev.Clock != "" {
			elapsed, err = ElapsedSeconds(ev.Clock, ev.Period)
			if err != nil {
				return nil, nil, fmt.Errorf("game %d event %d: %w", gameID, ev.Sequence, err)
			}
			lastElapsed = elapsed
		}

		if ev.Score != "" {
			h, w, err := parseScore(ev.Score)
			if err != nil {
				return nil, nil, fmt.Errorf("game %d event %d: %w", gameID, ev.Sequence, err)
			}
			homeScore, awayScore = h, w
		}

		attributed := AttributedEvent{
			EventID:   i + 1,
			GameID:    gameID,
			TeamID:    a.roster.TeamID(ev.Side),
			Jersey:    ev.Jersey,
			Legend:    code,
			ExtraInfo: detail,
			Elapsed:   elapsed,
			HomeScore: homeScore,
			AwayScore: awayScore,
		}

		if hasActor && ev.Player != "" {
			id, name, err := a.resolveActor(ctx, ev.Side, ev.Player)
			if err != nil {
				return nil, nil, fmt.Errorf("game %d event %d: %w", gameID, ev.Sequence, err)
			}
			attributed.ActorID = id.ID
			attributed.DisplayName = name

			a.trackOnCourt(code, ev, id.ID, onCourt, subsSeen, report)
		}

		out = append(out, attributed)
	}

	report.Events = len(out)
	return out, report, nil
}

// resolveActor maps a raw player fragment to an identity: exact roster match
// first, fuzzy fallback second. A successful fuzzy match registers the new
// variant for this team and season.
func (a *Attributor) resolveActor(ctx context.Context, side TeamSide, fragment string) (reconcile.Identity, string, error) {
	if id, ok := a.roster.Lookup(side, fragment); ok {
		return id, fragment, nil
	}

	candidates := a.roster.Names(side)
	best, score, err := reconcile.BestMatch(fragment, candidates)
	if err != nil {
		return reconcile.Identity{}, "", err
	}
	if score <= a.threshold {
		return reconcile.Identity{}, "", &reconcile.NoConfidentMatchError{
			Query:     fragment,
			Best:      best,
			Score:     score,
			Threshold: a.threshold,
		}
	}

	id, _ := a.roster.Lookup(side, best)
	log.Printf("  actor %q matched to %q with score %d", fragment, best, score)

	// Remember the in-game spelling so the next lookup is exact.
	a.roster.Add(side, fragment, id)
	if a.index != nil {
		if err := a.index.Register(ctx, id, fragment, a.roster.TeamID(side), a.season); err != nil {
			return reconcile.Identity{}, "", err
		}
	}
	return id, best, nil
}

// trackOnCourt maintains the per-side on-court set and records
// inconsistencies as warnings. Source data is known to drop substitutions;
// the corrections live in the patch list, not here.
func (a *Attributor) trackOnCourt(code string, ev RawEvent, actorID int, onCourt map[TeamSide]map[int]struct{}, subsSeen map[TeamSide]bool, report *QualityReport) {
	side := ev.Side
	court, ok := onCourt[side]
	if !ok {
		return
	}

	switch code {
	case ActionSubIn:
		subsSeen[side] = true
		if _, present := court[actorID]; present {
			report.Warnings = append(report.Warnings, RosterWarning{
				Sequence: ev.Sequence,
				Side:     side,
				Message:  fmt.Sprintf("sub_in for actor %d already on court", actorID),
			})
			return
		}
		court[actorID] = struct{}{}
		if len(court) > 5 {
			report.Warnings = append(report.Warnings, RosterWarning{
				Sequence: ev.Sequence,
				Side:     side,
				Message:  fmt.Sprintf("%d players on court after sub_in of actor %d", len(court), actorID),
			})
		}
	case ActionSubOut:
		subsSeen[side] = true
		if _, present := court[actorID]; !present {
			report.Warnings = append(report.Warnings, RosterWarning{
				Sequence: ev.Sequence,
				Side:     side,
				Message:  fmt.Sprintf("sub_out for actor %d who is not on court", actorID),
			})
			return
		}
		delete(court, actorID)
	default:
		if playRelevant[code] && subsSeen[side] && len(court) != 5 {
			report.Warnings = append(report.Warnings, RosterWarning{
				Sequence: ev.Sequence,
				Side:     side,
				Message:  fmt.Sprintf("%d players on court at %s", len(court), code),
			})
		}
	}
}

func parseScore(raw string) (home, away int, err error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed score marker %q", raw)
	}
	home, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed score marker %q: %w", raw, err)
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed score marker %q: %w", raw, err)
	}
	return home, away, nil
}

func reverse(events []RawEvent) {
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
}
