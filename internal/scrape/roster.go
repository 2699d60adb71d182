package scrape

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/jlanza/canasta/internal/reconcile"
)

// Roster holds the raw name pairs found on a club roster page. Ids come from
// profile links; players no longer on the squad appear in a separate table
// with their own link format.
type Roster struct {
	Players []reconcile.RawNamePair
	Coaches []reconcile.RawNamePair
}

var (
	anyID      = regexp.MustCompile(`([0-9]+)`)
	playerHref = regexp.MustCompile(`/jugador/ver/([0-9]+)`)
	coachHref  = regexp.MustCompile(`/entrenador/ver/([0-9]+)`)
)

// ParseRoster extracts players and coaches from a roster page. The page has
// three blocks: the main grid, the youth-squad grid, and the departed-players
// table.
func ParseRoster(doc *goquery.Document, sourcePage string) (*Roster, error) {
	roster := &Roster{}

	gridPairs := func(selector string) []reconcile.RawNamePair {
		var pairs []reconcile.RawNamePair
		doc.Find(selector).Find("div[class='foto'] a").Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok {
				return
			}
			m := anyID.FindStringSubmatch(href)
			if m == nil {
				return
			}
			id, _ := strconv.Atoi(m[1])
			name, _ := s.Attr("title")
			pairs = append(pairs, reconcile.RawNamePair{ID: id, Name: name, SourcePage: sourcePage})
		})
		return pairs
	}

	roster.Players = append(roster.Players, gridPairs("div[class='grid_plantilla principal']")...)
	roster.Players = append(roster.Players, gridPairs("div[class='grid_plantilla']")...)
	roster.Coaches = append(roster.Coaches, gridPairs("div[class='grid_plantilla mb20']")...)

	// Departed players and coaches share one table; the href form tells
	// them apart.
	doc.Find("td[class='jugador primero']").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Find("a").Attr("href")
		if !ok {
			return
		}
		name := s.Find("span[class='nombre_corto']").Text()
		if m := playerHref.FindStringSubmatch(href); m != nil {
			id, _ := strconv.Atoi(m[1])
			roster.Players = append(roster.Players, reconcile.RawNamePair{ID: id, Name: name, SourcePage: sourcePage})
		} else if m := coachHref.FindStringSubmatch(href); m != nil {
			id, _ := strconv.Atoi(m[1])
			roster.Coaches = append(roster.Coaches, reconcile.RawNamePair{ID: id, Name: name, SourcePage: sourcePage})
		}
	})

	return roster, nil
}
