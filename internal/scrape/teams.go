package scrape

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// TeamEntry is one club as listed on the season index page.
type TeamEntry struct {
	ID   string
	Name string
}

var teamHref = regexp.MustCompile(`/club/plantilla/id/([0-9]+)/temporada_id/([0-9]+)`)

// ParseSeasonTeams extracts the clubs of one season from the club index page.
// Entries pointing at other seasons are skipped; the page mixes current and
// historical links.
func ParseSeasonTeams(doc *goquery.Document, season int) ([]TeamEntry, error) {
	var teams []TeamEntry
	doc.Find("div[class='foto'] a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		m := teamHref.FindStringSubmatch(href)
		if m == nil {
			return
		}
		if year, _ := strconv.Atoi(m[2]); year != season {
			return
		}
		name, ok := s.Attr("title")
		if !ok || name == "" {
			return
		}
		teams = append(teams, TeamEntry{ID: m[1], Name: name})
	})

	if len(teams) == 0 {
		return nil, fmt.Errorf("no teams found for season %d", season)
	}
	return teams, nil
}
