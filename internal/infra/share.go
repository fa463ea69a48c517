package infra

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"sync"

	"odinary_go/internal/domain"
)

const shareHashtags = "#Odinary #NARY $NARY"

// BrowserOpener opens share URLs in the OS default browser.
type BrowserOpener struct{}

// Open launches url externally. Fire-and-forget: the browser reports
// nothing back.
func (BrowserOpener) Open(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}

// ShareService builds percent-encoded share intent URLs and opens them
// through a ShareTarget. Per-meme share counts are session display state
// only; they are deliberately not written back to the persisted
// collection.
type ShareService struct {
	opener  domain.ShareTarget
	metrics *Metrics

	mu     sync.Mutex
	counts map[string]int
}

// NewShareService creates a share service; metrics defaults to the
// process-wide instance.
func NewShareService(opener domain.ShareTarget, metrics *Metrics) *ShareService {
	if metrics == nil {
		metrics = GlobalMetrics
	}
	return &ShareService{
		opener:  opener,
		metrics: metrics,
		counts:  make(map[string]int),
	}
}

// XIntentURL builds the pre-filled post URL for a meme.
func XIntentURL(meme domain.Meme) string {
	text := fmt.Sprintf("Check out this ODINARY meme!\n%q\n\n%s", meme.Caption, shareHashtags)
	return "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text)
}

// AppIntentURL is the pre-filled post URL used from the studio itself.
func AppIntentURL() string {
	return "https://twitter.com/intent/tweet?text=" +
		url.QueryEscape("I'm creating a meme on ODINARY! Check it out. "+shareHashtags)
}

// TelegramShareURL builds the Telegram share link carrying the image URL.
func TelegramShareURL(meme domain.Meme) string {
	text := fmt.Sprintf("Check out this ODINARY meme!\n%q\n\n%s", meme.Caption, shareHashtags)
	return "https://t.me/share/url?url=" + url.QueryEscape(meme.ImageURL) + "&text=" + url.QueryEscape(text)
}

// ShareToX opens the X intent for a meme. Open failures are logged only;
// the share counter still advances because the intent was issued.
func (s *ShareService) ShareToX(meme domain.Meme) {
	s.share(meme.ID, XIntentURL(meme))
}

// ShareToTelegram opens the Telegram share link for a meme.
func (s *ShareService) ShareToTelegram(meme domain.Meme) {
	s.share(meme.ID, TelegramShareURL(meme))
}

func (s *ShareService) share(memeID, target string) {
	s.mu.Lock()
	s.counts[memeID]++
	s.mu.Unlock()
	s.metrics.RecordShare()

	if s.opener == nil {
		return
	}
	if err := s.opener.Open(target); err != nil {
		slog.Warn("Failed to open share target", slog.String("url", target), slog.Any("error", err))
	}
}

// SessionShares returns how many shares this session issued for a meme.
func (s *ShareService) SessionShares(memeID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[memeID]
}

// DisplayCount is the persisted base count plus this session's shares.
func (s *ShareService) DisplayCount(meme domain.Meme) int {
	return meme.ShareCount + s.SessionShares(meme.ID)
}
