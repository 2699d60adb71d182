package reconcile

import "log"

// TeamThreshold is the minimum fuzzy score for team-name matching. Team names
// carry sponsor prefixes that change season to season ("KIROLBET Baskonia",
// "Baskonia"), so the bar sits much lower than for people.
const TeamThreshold = 40

// TeamResolver maps scraped team names to team ids using the known names for
// one season.
type TeamResolver struct {
	ids       map[string]string
	names     []string
	threshold int
}

// NewTeamResolver builds a resolver from (name, teamID) pairs in first-seen
// order. Candidate order matters: ties break on the earlier entry.
func NewTeamResolver(names []string, ids map[string]string) *TeamResolver {
	return &TeamResolver{
		ids:       ids,
		names:     names,
		threshold: TeamThreshold,
	}
}

// Resolve matches a scraped team name against the known names. Exact match
// first, fuzzy fallback above the team threshold.
func (tr *TeamResolver) Resolve(name string) (string, error) {
	if id, ok := tr.ids[name]; ok {
		return id, nil
	}

	best, score, err := BestMatch(name, tr.names)
	if err != nil {
		return "", err
	}
	if score <= tr.threshold {
		return "", &NoConfidentMatchError{
			Query:     name,
			Best:      best,
			Score:     score,
			Threshold: tr.threshold,
		}
	}

	log.Printf("  team %q matched to %q with score %d", name, best, score)
	return tr.ids[best], nil
}
