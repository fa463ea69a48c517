package app

import (
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"odinary_go/internal/domain"
	"odinary_go/internal/feed"
	"odinary_go/internal/infra/storage"
	"odinary_go/internal/render"
)

// Studio drives the meme composition workflow: it owns the editable
// caption and color state, the selected template, and the preview loop.
// Every setting change is written through to storage so the next session
// starts where this one left off.
type Studio struct {
	composer *render.Composer
	loader   *render.TemplateLoader
	settings domain.SettingStore
	feed     *feed.Controller

	width     int
	height    int
	outputDir string
	now       func() time.Time

	mu           sync.Mutex
	topText      string
	bottomText   string
	textColor    color.NRGBA
	outlineColor color.NRGBA
	templateURL  string
	template     image.Image
	dirty        bool
}

// NewStudio creates a studio with default colors and no template.
func NewStudio(composer *render.Composer, loader *render.TemplateLoader, settings domain.SettingStore, feedCtrl *feed.Controller, width, height int, outputDir string) *Studio {
	return &Studio{
		composer:     composer,
		loader:       loader,
		settings:     settings,
		feed:         feedCtrl,
		width:        width,
		height:       height,
		outputDir:    outputDir,
		now:          time.Now,
		textColor:    render.DefaultTextColor,
		outlineColor: render.DefaultOutlineColor,
	}
}

// RestoreSettings loads the last session's composer state. Missing or
// malformed values fall back to defaults; a stored template URL outside
// the built-in catalog is ignored rather than fetched.
func (s *Studio) RestoreSettings(ctx context.Context) {
	if s.settings == nil {
		return
	}

	s.mu.Lock()
	if v, ok, err := s.settings.LoadSetting(storage.KeyTopText); err == nil && ok {
		s.topText = v
	}
	if v, ok, err := s.settings.LoadSetting(storage.KeyBottomText); err == nil && ok {
		s.bottomText = v
	}
	if v, ok, err := s.settings.LoadSetting(storage.KeyTextColor); err == nil && ok {
		if c, valid := render.ParseHexColor(v); valid {
			s.textColor = c
		}
	}
	if v, ok, err := s.settings.LoadSetting(storage.KeyOutlineColor); err == nil && ok {
		if c, valid := render.ParseHexColor(v); valid {
			s.outlineColor = c
		}
	}
	s.dirty = true
	s.mu.Unlock()

	if v, ok, err := s.settings.LoadSetting(storage.KeySelectedTemplateURL); err == nil && ok {
		if _, known := render.FindTemplateByURL(v); known {
			s.SelectTemplate(ctx, v)
		} else {
			slog.Warn("Ignoring stored template outside the catalog", slog.String("url", v))
		}
	}
}

func (s *Studio) saveSetting(key, value string) {
	if s.settings == nil {
		return
	}
	if err := s.settings.SaveSetting(key, value); err != nil {
		slog.Error("Failed to persist studio setting", slog.String("key", key), slog.Any("error", err))
	}
}

// SetTopText updates the top caption.
func (s *Studio) SetTopText(text string) {
	s.mu.Lock()
	s.topText = text
	s.dirty = true
	s.mu.Unlock()
	s.saveSetting(storage.KeyTopText, text)
}

// SetBottomText updates the bottom caption.
func (s *Studio) SetBottomText(text string) {
	s.mu.Lock()
	s.bottomText = text
	s.dirty = true
	s.mu.Unlock()
	s.saveSetting(storage.KeyBottomText, text)
}

// SetTextColor updates the caption fill color. Invalid hex values are
// rejected and the current color stands.
func (s *Studio) SetTextColor(hex string) bool {
	c, ok := render.ParseHexColor(hex)
	if !ok {
		return false
	}
	s.mu.Lock()
	s.textColor = c
	s.dirty = true
	s.mu.Unlock()
	s.saveSetting(storage.KeyTextColor, hex)
	return true
}

// SetOutlineColor updates the caption outline color.
func (s *Studio) SetOutlineColor(hex string) bool {
	c, ok := render.ParseHexColor(hex)
	if !ok {
		return false
	}
	s.mu.Lock()
	s.outlineColor = c
	s.dirty = true
	s.mu.Unlock()
	s.saveSetting(storage.KeyOutlineColor, hex)
	return true
}

// SelectTemplate starts loading a template image in the background. If a
// newer selection is made before the fetch completes, the stale result
// is dropped. The selection is persisted immediately, not on completion.
func (s *Studio) SelectTemplate(ctx context.Context, url string) {
	s.mu.Lock()
	s.templateURL = url
	s.template = nil
	s.dirty = true
	s.mu.Unlock()
	s.saveSetting(storage.KeySelectedTemplateURL, url)

	s.loader.StartLoad(ctx, url, func(img image.Image, err error) {
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.templateURL == url {
			s.template = img
			s.dirty = true
		}
		s.mu.Unlock()
	})
}

// RandomizeTemplate picks a catalog template other than the current one.
func (s *Studio) RandomizeTemplate(ctx context.Context) {
	s.mu.Lock()
	current := s.templateURL
	s.mu.Unlock()
	s.SelectTemplate(ctx, render.RandomOtherTemplate(current).URL)
}

// SetTemplateImage installs an already-decoded template, bypassing the
// loader. Used for tests and local files.
func (s *Studio) SetTemplateImage(url string, img image.Image) {
	s.mu.Lock()
	s.templateURL = url
	s.template = img
	s.dirty = true
	s.mu.Unlock()
}

// TemplateURL returns the currently selected template source.
func (s *Studio) TemplateURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templateURL
}

// Captions returns the current caption pair.
func (s *Studio) Captions() (topText, bottomText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topText, s.bottomText
}

// Preview renders the current state to a PNG.
func (s *Studio) Preview() ([]byte, error) {
	s.mu.Lock()
	tpl := s.template
	top, bottom := s.topText, s.bottomText
	textColor, outlineColor := s.textColor, s.outlineColor
	s.dirty = false
	s.mu.Unlock()

	return s.composer.Compose(tpl, top, bottom, textColor, outlineColor, s.width, s.height)
}

// RunPreviewLoop re-renders at most once per interval while the state is
// dirty, coalescing rapid edits into a single redraw. Blocks until ctx
// is cancelled.
func (s *Studio) RunPreviewLoop(ctx context.Context, interval time.Duration, apply func([]byte)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		needsRender := s.dirty && s.template != nil
		s.mu.Unlock()
		if !needsRender {
			continue
		}

		png, err := s.Preview()
		if err != nil {
			slog.Warn("Preview render failed", slog.Any("error", err))
			continue
		}
		apply(png)
	}
}

// GenerateAndSave composes the final image, writes it to the output
// directory, and publishes the meme to the feed. At least one caption
// must be non-blank.
func (s *Studio) GenerateAndSave(ctx context.Context) (domain.Meme, error) {
	s.mu.Lock()
	tpl := s.template
	top, bottom := s.topText, s.bottomText
	textColor, outlineColor := s.textColor, s.outlineColor
	templateURL := s.templateURL
	s.mu.Unlock()

	if domain.JoinCaption(top, bottom) == "" {
		return domain.Meme{}, domain.ErrEmptyCaption
	}

	png, err := s.composer.Compose(tpl, top, bottom, textColor, outlineColor, s.width, s.height)
	if err != nil {
		return domain.Meme{}, err
	}

	if s.outputDir != "" {
		name := render.FileName(top, bottom)
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			slog.Error("Failed to create output directory", slog.Any("error", err))
		} else if err := os.WriteFile(filepath.Join(s.outputDir, name), png, 0644); err != nil {
			slog.Error("Failed to write meme file", slog.String("name", name), slog.Any("error", err))
		} else {
			slog.Info("💾 Meme saved", slog.String("name", name))
		}
	}

	meme := domain.Meme{
		ID:        domain.NewMemeID(s.now()),
		ImageURL:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		Caption:   domain.JoinCaption(top, bottom),
		Prompt:    render.TemplatePrompt(templateURL),
		Watermark: render.WatermarkText(top, bottom),
	}
	s.feed.Create(meme)
	return meme, nil
}
