package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jlanza/canasta/internal/reconcile"
)

var refereeLink = regexp.MustCompile(`([0-9]+)`)

// ParseBoxScore extracts the per-side box lines and the referee crew from a
// game stats page.
func ParseBoxScore(doc *goquery.Document, sourcePage string) (*BoxScore, error) {
	headers, err := parseStatsHeaders(doc)
	if err != nil {
		return nil, err
	}

	box := &BoxScore{}
	box.Home, err = parseSideLines(doc, "section[class='partido']", headers)
	if err != nil {
		return nil, fmt.Errorf("home box score: %w", err)
	}
	box.Away, err = parseSideLines(doc, "section[class='partido visitante']", headers)
	if err != nil {
		return nil, fmt.Errorf("away box score: %w", err)
	}
	box.Referees = parseReferees(doc, sourcePage)
	return box, nil
}

// parseStatsHeaders reads the column labels of the stats table. The source
// reuses "C" three times (counterattack, received block, received foul) and
// "F" twice (block, foul); positions disambiguate them.
func parseStatsHeaders(doc *goquery.Document) ([]string, error) {
	var headers []string
	doc.Find("table[data-toggle='table-estadisticas']").First().
		Find("tr").Eq(1).Find("th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(s.Text()))
	})
	if len(headers) == 0 {
		return nil, fmt.Errorf("stats header row not found")
	}

	cIndices := indicesOf(headers, "C")
	if len(cIndices) != 3 {
		return nil, fmt.Errorf("expected 3 'C' columns, found %d", len(cIndices))
	}
	headers[cIndices[1]] = "TAPC"
	headers[cIndices[2]] = "FPC"

	fIndices := indicesOf(headers, "F")
	if len(fIndices) != 2 {
		return nil, fmt.Errorf("expected 2 'F' columns, found %d", len(fIndices))
	}
	headers[fIndices[0]] = "TAPF"
	headers[fIndices[1]] = "FPF"

	return headers, nil
}

func indicesOf(values []string, target string) []int {
	var out []int
	for i, v := range values {
		if v == target {
			out = append(out, i)
		}
	}
	return out
}

func parseSideLines(doc *goquery.Document, sectionSelector string, headers []string) ([]BoxLine, error) {
	var lines []BoxLine
	var parseErr error

	doc.Find(sectionSelector).Find("tr").Each(func(rowIndex int, row *goquery.Selection) {
		if parseErr != nil {
			return
		}
		// First two rows are the table headers.
		if rowIndex < 2 {
			return
		}
		if class, _ := row.Attr("class"); class == "totales" {
			return
		}
		cells := row.Find("td")
		if strings.TrimSpace(cells.Eq(0).Text()) == "5f" {
			return
		}

		line, ok, err := parseBoxLine(cells, headers)
		if err != nil {
			parseErr = err
			return
		}
		if ok {
			lines = append(lines, line)
		}
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return lines, nil
}

func parseBoxLine(cells *goquery.Selection, headers []string) (BoxLine, bool, error) {
	var line BoxLine

	for k := 0; k < cells.Length() && k < len(headers); k++ {
		cell := cells.Eq(k)
		value := strings.TrimSpace(cell.Text())

		switch headers[k] {
		case "Nombre":
			if value == "" {
				// Ghost row without a name; drop the whole line.
				return BoxLine{}, false, nil
			}
			line.Name = value
			href, hasLink := cell.Find("a").Attr("href")
			class, _ := cell.Attr("class")
			switch {
			case !hasLink && value == "Equipo":
				line.ActorID = TeamBench
				line.Category = reconcile.CategoryPlayer
			case class == "nombre entrenador":
				line.ActorID = extractID(href)
				line.Category = reconcile.CategoryCoach
			case class == "nombre jugador ellipsis":
				line.ActorID = extractID(href)
				line.Category = reconcile.CategoryPlayer
			default:
				return BoxLine{}, false, fmt.Errorf("unrecognized name cell class %q for %q", class, value)
			}
		case "Min":
			if value != "" {
				mm, ss, found := strings.Cut(value, ":")
				if !found {
					return BoxLine{}, false, fmt.Errorf("malformed minutes %q", value)
				}
				minutes, _ := strconv.Atoi(mm)
				seconds, _ := strconv.Atoi(ss)
				line.Seconds = minutes*60 + seconds
			}
		case "D":
			// "7*" marks a starter, "E" a coach.
			if value != "" && value != "E" {
				line.IsStarter = strings.Contains(value, "*")
				if m := refereeLink.FindStringSubmatch(value); m != nil {
					line.Jersey, _ = strconv.Atoi(m[1])
				}
			}
		case "D+O":
			line.DefReb, line.OffReb = splitPair(value, "+")
		case "T1":
			line.OneMade, line.OneAttempted = splitPair(value, "/")
		case "T2":
			line.TwoMade, line.TwoAttempted = splitPair(value, "/")
		case "T3":
			line.ThreeMade, line.ThreeAttempted = splitPair(value, "/")
		case "P":
			line.Points = atoiOrZero(value)
		case "A":
			line.Assists = atoiOrZero(value)
		case "BR":
			line.Steals = atoiOrZero(value)
		case "BP":
			line.Turnovers = atoiOrZero(value)
		case "TAPF":
			line.Blocks = atoiOrZero(value)
		case "TAPC":
			line.BlocksReceived = atoiOrZero(value)
		case "M":
			line.Dunks = atoiOrZero(value)
		case "FPF":
			line.Fouls = atoiOrZero(value)
		case "FPC":
			line.FoulsReceived = atoiOrZero(value)
		case "+/-":
			line.PlusMinus = atoiOrZero(value)
		case "V":
			line.Efficiency = atoiOrZero(value)
		case "C":
			// After disambiguation only counterattack keeps the raw label.
			line.Counterattacks = atoiOrZero(value)
		default:
			// Percentage and total columns are derived, not stored.
		}
	}

	if line.Name == "" {
		return BoxLine{}, false, nil
	}
	return line, true, nil
}

func parseReferees(doc *goquery.Document, sourcePage string) []reconcile.RawNamePair {
	var referees []reconcile.RawNamePair
	doc.Find("div[class='datos_arbitros bg_gris_claro colorweb_2 float-left roboto_light']").
		Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		name := strings.TrimSpace(s.Text())
		if name == "" {
			return
		}
		referees = append(referees, reconcile.RawNamePair{
			ID:         extractID(href),
			Name:       name,
			SourcePage: sourcePage,
		})
	})
	return referees
}

func extractID(href string) int {
	m := refereeLink.FindStringSubmatch(href)
	if m == nil {
		return 0
	}
	id, _ := strconv.Atoi(m[1])
	return id
}

func splitPair(value, sep string) (int, int) {
	if value == "" {
		return 0, 0
	}
	left, right, found := strings.Cut(value, sep)
	if !found {
		return 0, 0
	}
	return atoiOrZero(left), atoiOrZero(right)
}

func atoiOrZero(value string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(value))
	return n
}
