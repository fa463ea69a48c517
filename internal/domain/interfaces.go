package domain

import (
	"context"
	"image"
)

// MemeStore persists the whole meme collection under a single key. A
// write fully replaces the prior value; there are no per-entity records.
type MemeStore interface {
	SaveMemes(memes []Meme) error
	LoadMemes() ([]Meme, bool, error)
}

// CommentStore persists one comment list per meme.
type CommentStore interface {
	SaveComments(memeID string, comments []Comment) error
	LoadComments(memeID string) ([]Comment, bool, error)
}

// SettingStore holds last-used composer settings as string key-values.
type SettingStore interface {
	SaveSetting(key, value string) error
	LoadSetting(key string) (string, bool, error)
}

// ImageSource fetches and decodes an image by URL. Failure means "show
// placeholder", never a fatal condition.
type ImageSource interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// PriceProvider yields the current token quote, falling back to a fixed
// value when the remote feed is unavailable.
type PriceProvider interface {
	Start(ctx context.Context) error
	Quote() PriceData
}

// ShareTarget opens an external share URL. Fire-and-forget: failures are
// logged by implementations, never reported back to the caller.
type ShareTarget interface {
	Open(url string) error
}
