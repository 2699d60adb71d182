package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	gameStatsLink = regexp.MustCompile(`<a href="/partido/estadisticas/id/([0-9]+)" title="Estadísticas">`)
	feedIDBlock   = regexp.MustCompile(`<div class="partido borde_azul" id="partido-([0-9]+)">`)
	feedGameLink  = regexp.MustCompile(`"http://www\.acb\.com/fichas/LACB([0-9]+)\.php`)
)

// ParseJourneyIDs maps journey numbers to their page ids on the season
// results index. Journeys the site has not published yet are absent.
func ParseJourneyIDs(doc *goquery.Document) (map[int]string, error) {
	journeys := make(map[int]string)

	doc.Find("div[class='listado_elementos listado_jornadas bg_gris_claro']").First().
		Find("div").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("data-t2v-id")
		if !ok {
			return
		}
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			return
		}
		number, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return
		}
		journeys[number] = id
	})

	if len(journeys) == 0 {
		return nil, fmt.Errorf("no journeys found")
	}
	return journeys, nil
}

// ParseFeedIDs pairs the live-feed ids of a results archive page with the
// legacy game codes they belong to. The two id lists appear in the same
// order, one block per game.
func ParseFeedIDs(html string) map[string]string {
	feeds := feedIDBlock.FindAllStringSubmatch(html, -1)
	games := feedGameLink.FindAllStringSubmatch(html, -1)

	pairs := make(map[string]string, len(feeds))
	for i := range feeds {
		if i >= len(games) {
			break
		}
		pairs[feeds[i][1]] = games[i][1]
	}
	return pairs
}

// ParseJourneyGameIDs extracts the game ids linked from one journey page.
// Works on the raw HTML because the links sit inside scripted templates that
// do not survive DOM normalization.
func ParseJourneyGameIDs(html string) []int {
	var ids []int
	for _, m := range gameStatsLink.FindAllStringSubmatch(html, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
