package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// BaseURL of the league site.
	BaseURL = "http://www.acb.com"

	// LiveFeedBaseURL hosts the play-by-play pages.
	LiveFeedBaseURL = "http://jv.acb.com"

	// ShotChartBaseURL hosts the rendered shot-chart pages.
	ShotChartBaseURL = "http://www.fibalivestats.com/u/ACBS"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to prevent rate limiting
	MinRequestInterval = 2 * time.Second
)

// PageCache stores raw HTML per URL. A non-nil error from GetPage is a miss;
// the network fetch then repopulates the entry.
type PageCache interface {
	GetPage(ctx context.Context, url string) (string, error)
	SetPage(ctx context.Context, url, html string) error
}

// Client downloads league pages with fetch-once semantics and rate limiting.
type Client struct {
	http        *http.Client
	cache       PageCache
	lastRequest time.Time
	interval    time.Duration
}

// NewClient creates a page client. A nil cache disables fetch-once and every
// call goes to the network.
func NewClient(cache PageCache) *Client {
	return &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		cache:    cache,
		interval: MinRequestInterval,
	}
}

// FetchPage returns the HTML of url, from cache when available.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	if c.cache != nil {
		if html, err := c.cache.GetPage(ctx, url); err == nil {
			return html, nil
		}
	}

	html, err := c.fetchWithRateLimit(ctx, url)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.SetPage(ctx, url, html); err != nil {
			log.Printf("⚠️  caching %s failed: %v", url, err)
		}
	}
	return html, nil
}

// fetchWithRateLimit fetches content with automatic rate limiting
func (c *Client) fetchWithRateLimit(ctx context.Context, url string) (string, error) {
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			waitTime := c.interval - elapsed
			log.Printf("Rate limiting: waiting %v before next request", waitTime)
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	html, err := c.fetch(ctx, url)
	c.lastRequest = time.Now()
	return html, err
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("fetching %s: empty body", url)
	}
	return string(body), nil
}

// TeamsURL lists the clubs of a season.
func TeamsURL(season int) string {
	return fmt.Sprintf("%s/club/index/temporada_id/%d", BaseURL, season)
}

// RosterURL is the squad page of a club for a season.
func RosterURL(teamID string, season int) string {
	return fmt.Sprintf("%s/club/plantilla/id/%s/temporada_id/%d", BaseURL, teamID, season)
}

// JourneysURL lists the journeys of a season.
func JourneysURL(season int) string {
	return fmt.Sprintf("%s/resultados-clasificacion/ver/temporada_id/%d/edicion_id/", BaseURL, season)
}

// JourneyURL lists the games of one journey.
func JourneyURL(season int, journeyID string) string {
	return fmt.Sprintf("%s/resultados-clasificacion/ver/temporada_id/%d/edicion_id/undefined/jornada_id/%s", BaseURL, season, journeyID)
}

// ResultsArchiveURL is the legacy results page of one journey. It carries the
// feed ids that key the play-by-play and shot-chart pages.
func ResultsArchiveURL(seasonID, journey int) string {
	return fmt.Sprintf("%s/historico.php?jornada=%d&cod_competicion=LACB&cod_edicion=%d", LiveFeedBaseURL, journey, seasonID)
}

// GameURL is the stats page of one game.
func GameURL(gameID int) string {
	return fmt.Sprintf("%s/partido/estadisticas/id/%d", BaseURL, gameID)
}

// PlayByPlayURL is the live-feed page of one game, keyed by the feed id.
func PlayByPlayURL(feedID string) string {
	return fmt.Sprintf("%s/partido.php?c=%s", LiveFeedBaseURL, feedID)
}

// ShotChartURL is the dynamic shot-chart page of one game, keyed by the feed
// id. Needs browser rendering; pass it to the Renderer, not FetchPage.
func ShotChartURL(feedID string) string {
	return fmt.Sprintf("%s/%s/sc.html", ShotChartBaseURL, feedID)
}
