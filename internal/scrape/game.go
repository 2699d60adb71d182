package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jlanza/canasta/internal/reconcile"
)

// GameSummary is the header information of one game stats page.
type GameSummary struct {
	GameID       int
	HomeTeamID   string
	AwayTeamID   string
	Journey      int
	KickoffTime  time.Time
	Venue        string
	Attendance   int
	HomeScore    int
	AwayScore    int
	HomePartials []int
	AwayPartials []int
}

// BoxLine is one row of the box-score table. The team total row and the
// five-fouls marker row are never emitted.
type BoxLine struct {
	ActorID        int
	Name           string
	Category       reconcile.Category
	IsStarter      bool
	Jersey         int
	Seconds        int
	Points         int
	TwoMade        int
	TwoAttempted   int
	ThreeMade      int
	ThreeAttempted int
	OneMade        int
	OneAttempted   int
	DefReb         int
	OffReb         int
	Assists        int
	Steals         int
	Turnovers      int
	Counterattacks int
	Blocks         int
	BlocksReceived int
	Dunks          int
	Fouls          int
	FoulsReceived  int
	PlusMinus      int
	Efficiency     int
}

// BoxScore groups the per-side box lines and the referee crew of one game.
type BoxScore struct {
	Home     []BoxLine
	Away     []BoxLine
	Referees []reconcile.RawNamePair
}

// TeamBench is the actor id used for rows charged to the team as a whole
// ("Equipo"). Those rows carry no profile link.
const TeamBench = -1

var (
	gameTeamHref = regexp.MustCompile(`/id/([0-9]+)/`)
	scheduleSep  = "|"
)

// ParseGameSummary extracts teams, schedule and scores from a game stats page.
func ParseGameSummary(doc *goquery.Document, gameID int) (*GameSummary, error) {
	g := &GameSummary{GameID: gameID}

	var err error
	g.HomeTeamID, g.AwayTeamID, err = parseGameTeams(doc)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", gameID, err)
	}

	if err := parseSchedule(doc, g); err != nil {
		return nil, fmt.Errorf("game %d: %w", gameID, err)
	}

	results := doc.Find("div[class='info']")
	g.HomeScore, g.HomePartials, err = parseScores(results, true)
	if err != nil {
		return nil, fmt.Errorf("game %d home scores: %w", gameID, err)
	}
	g.AwayScore, g.AwayPartials, err = parseScores(results, false)
	if err != nil {
		return nil, fmt.Errorf("game %d away scores: %w", gameID, err)
	}

	return g, nil
}

func parseGameTeams(doc *goquery.Document) (home, away string, err error) {
	logos := doc.Find("div[class='logo_equipo']")
	if logos.Length() < 2 {
		return "", "", fmt.Errorf("team logos not found")
	}
	for i, id := range []*string{&home, &away} {
		href, ok := logos.Eq(i).Find("a").Attr("href")
		if !ok {
			return "", "", fmt.Errorf("team link %d missing", i)
		}
		m := gameTeamHref.FindStringSubmatch(href)
		if m == nil {
			return "", "", fmt.Errorf("no team id in %q", href)
		}
		*id = m[1]
	}
	return home, away, nil
}

// parseSchedule reads the header bar "JORNADA 35 | 27/05/2018 | 18:30 |
// <venue> | Público: 10.084". The venue text is rendered twice for the two
// responsive layouts, so it arrives duplicated.
func parseSchedule(doc *goquery.Document, g *GameSummary) error {
	text := doc.Find("div[class='datos_fecha roboto_bold colorweb_4 float-left bg_principal']").Text()
	parts := strings.Split(text, scheduleSep)
	if len(parts) != 5 {
		return fmt.Errorf("malformed schedule header %q", text)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	journey, date, hour, venue, attendance := parts[0], parts[1], parts[2], parts[3], parts[4]

	if fields := strings.Fields(journey); len(fields) == 2 {
		g.Journey, _ = strconv.Atoi(fields[1])
	}

	if date != "" && hour != "" {
		kickoff, err := time.Parse("02/01/2006 15:04", date+" "+hour)
		if err != nil {
			return fmt.Errorf("malformed kickoff %q %q: %w", date, hour, err)
		}
		g.KickoffTime = kickoff
	}

	if n := len(venue); n%2 == 0 && venue[:n/2] == venue[n/2:] {
		venue = venue[:n/2]
	}
	g.Venue = venue

	if attendance != "" {
		_, after, found := strings.Cut(attendance, ":")
		if found {
			after = strings.ReplaceAll(strings.TrimSpace(after), ".", "")
			g.Attendance, _ = strconv.Atoi(after)
		}
	}
	return nil
}

func parseScores(results *goquery.Selection, isHome bool) (int, []int, error) {
	tag := "local"
	if !isHome {
		tag = "visitante"
	}

	scoreSel := results.Find(fmt.Sprintf("div[class='resultado %s roboto_bold victoria']", tag))
	if scoreSel.Length() == 0 {
		scoreSel = results.Find(fmt.Sprintf("div[class='resultado %s roboto_bold derrota']", tag))
	}
	score, err := strconv.Atoi(strings.TrimSpace(scoreSel.Text()))
	if err != nil {
		return 0, nil, fmt.Errorf("final score: %w", err)
	}

	// Row 0 of the partials table is the header; home is row 1, away row 2.
	rowIndex := 1
	if !isHome {
		rowIndex = 2
	}
	var partials []int
	cells := results.Find("tr").Eq(rowIndex).Find("td")
	// First two cells are the team tag and a spacer, the last one a spacer.
	for i := 2; i < cells.Length()-1; i++ {
		text := strings.TrimSpace(cells.Eq(i).Text())
		if text == "" {
			continue
		}
		quarter, err := strconv.Atoi(text)
		if err != nil {
			return 0, nil, fmt.Errorf("partial score %q: %w", text, err)
		}
		partials = append(partials, quarter)
	}
	return score, partials, nil
}
