package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jlanza/canasta/internal/attribute"
)

// ShotMarker is one shot dot on the rendered shot-chart page. Coordinates are
// percentages of the court image.
type ShotMarker struct {
	Side      attribute.TeamSide
	Made      bool
	Period    string // "1".."4", "OT"
	Jersey    int
	Player    string
	Shot      string // "2PT", "3PT", free-throw label
	ShotType  string // "Bandeja", "Mate", ... empty when the feed gives none
	BottomPct float64
	LeftPct   float64
}

var (
	bottomPct = regexp.MustCompile(`bottom:\s*([0-9.]+)%`)
	leftPct   = regexp.MustCompile(`left:\s*([0-9.]+)%`)
)

// ParseShotChart extracts the shot markers of one game. Markers come
// newest-first like the event feed, so the result is reversed into
// chronological order here.
func ParseShotChart(doc *goquery.Document) ([]ShotMarker, error) {
	var markers []ShotMarker

	spans := doc.Find("span")
	for i := spans.Length() - 1; i >= 0; i-- {
		s := spans.Eq(i)
		class, hasClass := s.Attr("class")
		style, hasStyle := s.Attr("style")
		title, hasTitle := s.Attr("title")
		if !hasClass || !hasStyle || !hasTitle {
			continue
		}

		marker, ok, err := parseShotMarker(class, style, title)
		if err != nil {
			return nil, err
		}
		if ok {
			markers = append(markers, marker)
		}
	}

	if len(markers) == 0 {
		return nil, fmt.Errorf("no shot markers found")
	}
	return markers, nil
}

func parseShotMarker(class, style, title string) (ShotMarker, bool, error) {
	tags := strings.Fields(class)
	if len(tags) < 5 {
		return ShotMarker{}, false, nil
	}

	var marker ShotMarker
	switch tags[1] {
	case "black_made", "white_made":
		marker.Made = true
	case "black_missed", "white_missed":
		marker.Made = false
	default:
		return ShotMarker{}, false, nil
	}

	switch tags[2] {
	case "sc_per1", "sc_per2", "sc_per3", "sc_per4":
		marker.Period = strings.TrimPrefix(tags[2], "sc_per")
	case "sc_perot":
		marker.Period = "OT"
	default:
		return ShotMarker{}, false, fmt.Errorf("unknown period class %q", tags[2])
	}

	marker.Side = attribute.SideHome
	if tags[4] == "sc_tn2" {
		marker.Side = attribute.SideAway
	}

	if m := bottomPct.FindStringSubmatch(style); m != nil {
		marker.BottomPct, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := leftPct.FindStringSubmatch(style); m != nil {
		marker.LeftPct, _ = strconv.ParseFloat(m[1], 64)
	}

	// Title format: "7, Smith, J., 2PT Bandeja". The player fragment itself
	// contains a comma, so split from both ends.
	fields := strings.Split(title, ",")
	if len(fields) < 3 {
		return ShotMarker{}, false, fmt.Errorf("malformed shot title %q", title)
	}
	if strings.TrimSpace(fields[0]) == "" {
		fields = fields[1:]
	}
	marker.Jersey, _ = strconv.Atoi(strings.TrimSpace(fields[0]))
	shotText := strings.TrimSpace(fields[len(fields)-1])
	marker.Player = strings.TrimSpace(strings.Join(fields[1:len(fields)-1], ","))

	switch {
	case strings.HasPrefix(shotText, "2PT") || strings.HasPrefix(shotText, "3PT"):
		shot, shotType, _ := strings.Cut(shotText, " ")
		marker.Shot = shot
		marker.ShotType = shotType
	case shotText == "Mate":
		marker.Shot = "2PT"
		marker.ShotType = shotText
	default:
		marker.Shot = shotText
	}

	return marker, true, nil
}
