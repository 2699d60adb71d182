package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Renderer drives a headless browser for the shot-chart pages, whose markers
// only exist after the page scripts run.
type Renderer struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	cache    PageCache
}

// NewRenderer creates a headless browser renderer. A nil cache disables
// fetch-once.
func NewRenderer(cache PageCache) *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Renderer{
		allocCtx: allocCtx,
		cancel:   cancel,
		cache:    cache,
	}
}

// Close releases the browser resources.
func (r *Renderer) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}

// RenderPage returns the post-script HTML of url, from cache when available.
func (r *Renderer) RenderPage(ctx context.Context, url string) (string, error) {
	if r.cache != nil {
		if html, err := r.cache.GetPage(ctx, url); err == nil {
			return html, nil
		}
	}

	html, err := r.render(ctx, url)
	if err != nil {
		return "", err
	}

	if r.cache != nil {
		_ = r.cache.SetPage(ctx, url, html)
	}
	return html, nil
}

func (r *Renderer) render(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // Allow JS to render
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}
	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}
	return htmlContent, nil
}
