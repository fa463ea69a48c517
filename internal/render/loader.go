package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"odinary_go/internal/domain"
)

// TemplateLoader fetches and decodes template images. It tracks the most
// recent selection with a generation counter so a load that finishes
// after the user has already picked another template is discarded instead
// of clobbering the newer choice.
type TemplateLoader struct {
	client *http.Client

	mu         sync.Mutex
	generation uint64
	currentURL string
}

// NewTemplateLoader creates a loader with a tuned HTTP transport to
// prevent connection leaks across repeated template switches.
func NewTemplateLoader() *TemplateLoader {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxConnsPerHost = 10
	transport.IdleConnTimeout = 30 * time.Second

	return &TemplateLoader{
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// Select records url as the active template choice and returns the load
// token for it. Any token from an earlier Select is now stale.
func (l *TemplateLoader) Select(url string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.currentURL = url
	return l.generation
}

// Current returns the most recently selected template URL.
func (l *TemplateLoader) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentURL
}

func (l *TemplateLoader) isCurrent(token uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return token == l.generation
}

// Fetch downloads and decodes the image at url.
func (l *TemplateLoader) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewFatalNetworkError("load_template", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError("load_template", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewNetworkError("load_template", fmt.Errorf("bad status: %s", resp.Status))
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, domain.NewFatalNetworkError("load_template", fmt.Errorf("failed to decode image: %w", err))
	}
	return img, nil
}

// LoadSelected fetches url and returns ErrStaleLoad when the selection
// identified by token has been superseded while the fetch was in flight.
func (l *TemplateLoader) LoadSelected(ctx context.Context, token uint64, url string) (image.Image, error) {
	img, err := l.Fetch(ctx, url)
	if !l.isCurrent(token) {
		return nil, domain.ErrStaleLoad
	}
	return img, err
}

// StartLoad selects url and fetches it in the background, invoking apply
// only when the result still matches the current selection. Load failure
// is reported to apply with a nil image so callers fall back to a
// placeholder.
func (l *TemplateLoader) StartLoad(ctx context.Context, url string, apply func(image.Image, error)) {
	token := l.Select(url)
	go func() {
		img, err := l.LoadSelected(ctx, token, url)
		if err == domain.ErrStaleLoad {
			slog.Debug("Discarding superseded template load", slog.String("url", url))
			return
		}
		if err != nil {
			slog.Warn("Template load failed", slog.String("url", url), slog.Any("error", err))
		}
		apply(img, err)
	}()
}
