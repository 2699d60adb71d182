package scrape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jlanza/canasta/internal/attribute"
)

// ParsePlayByPlay extracts the raw event stream from a live-feed page. The
// feed renders newest-first; the slice keeps that order and the attributor
// reverses it.
func ParsePlayByPlay(doc *goquery.Document) ([]attribute.RawEvent, error) {
	var events []attribute.RawEvent
	var parseErr error

	doc.Find("div[class^='jugada']").Each(func(i int, s *goquery.Selection) {
		if parseErr != nil {
			return
		}

		ev := attribute.RawEvent{
			Sequence: len(events) + 1,
			Side:     sideOf(s),
			Action:   strings.TrimSpace(s.Find("span[class='accion']").Text()),
			Period:   strings.TrimSpace(s.Find("span[class='per']").Text()),
			Clock:    strings.TrimSpace(s.Find("span[class='min']").Text()),
			Player:   strings.TrimSpace(s.Find("span[class='jugador']").Text()),
			Score:    strings.TrimSpace(s.Find("span[class='marcador']").Text()),
		}
		if num, ok := s.Attr("data-num"); ok {
			if n, err := strconv.Atoi(num); err == nil {
				ev.Sequence = n
			}
		}
		if jersey := strings.TrimSpace(s.Find("span[class='dorsal']").Text()); jersey != "" {
			ev.Jersey, _ = strconv.Atoi(jersey)
		}

		if ev.Action == "" {
			parseErr = fmt.Errorf("event %d has no action text", ev.Sequence)
			return
		}
		events = append(events, ev)
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no play-by-play events found")
	}
	return events, nil
}

func sideOf(s *goquery.Selection) attribute.TeamSide {
	class, _ := s.Attr("class")
	switch {
	case strings.Contains(class, "equipo_local"):
		return attribute.SideHome
	case strings.Contains(class, "equipo_visitante"):
		return attribute.SideAway
	default:
		return attribute.SideNeutral
	}
}
