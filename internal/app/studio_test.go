package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"odinary_go/internal/domain"
	"odinary_go/internal/feed"
	"odinary_go/internal/infra"
	"odinary_go/internal/infra/storage"
	"odinary_go/internal/render"
)

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (f *fakeSettings) SaveSetting(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeSettings) LoadSetting(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func testTemplate() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 120, 90))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	return img
}

func newTestStudio(t *testing.T, settings domain.SettingStore) (*Studio, *feed.Controller) {
	t.Helper()
	composer, err := render.NewComposer()
	if err != nil {
		t.Fatalf("Failed to build composer: %v", err)
	}
	ctrl := feed.NewControllerWithConfig(nil, nil, nil, &infra.Metrics{}, time.Millisecond)
	studio := NewStudio(composer, render.NewTemplateLoader(), settings, ctrl, 200, 200, "")
	studio.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return studio, ctrl
}

func TestGenerateAndSave(t *testing.T) {
	settings := newFakeSettings()
	studio, ctrl := newTestStudio(t, settings)
	studio.SetTemplateImage("https://i.imgflip.com/1g8my4.jpg", testTemplate())
	studio.SetTopText("GM")
	studio.SetBottomText("WAGMI")

	meme, err := studio.GenerateAndSave(context.Background())
	if err != nil {
		t.Fatalf("GenerateAndSave failed: %v", err)
	}

	if meme.ID != "meme-1700000000000" {
		t.Errorf("ID = %q", meme.ID)
	}
	if meme.Caption != "GM WAGMI" {
		t.Errorf("Caption = %q, want GM WAGMI", meme.Caption)
	}
	if meme.Watermark != "ODINARY • ODNRYEGZC" {
		t.Errorf("Watermark = %q", meme.Watermark)
	}
	if meme.Prompt != "Template: Two Buttons" {
		t.Errorf("Prompt = %q", meme.Prompt)
	}
	if !strings.HasPrefix(meme.ImageURL, "data:image/png;base64,") {
		t.Errorf("ImageURL is not a data URI: %.40s", meme.ImageURL)
	}

	memes := ctrl.Memes()
	if len(memes) != 1 || memes[0].ID != meme.ID {
		t.Errorf("Meme not published to feed: %+v", memes)
	}
}

func TestGenerateAndSave_RequiresCaption(t *testing.T) {
	studio, _ := newTestStudio(t, newFakeSettings())
	studio.SetTemplateImage("x", testTemplate())
	studio.SetTopText("   ")

	_, err := studio.GenerateAndSave(context.Background())
	if !errors.Is(err, domain.ErrEmptyCaption) {
		t.Fatalf("Expected ErrEmptyCaption, got %v", err)
	}
}

func TestGenerateAndSave_RequiresTemplate(t *testing.T) {
	studio, _ := newTestStudio(t, newFakeSettings())
	studio.SetTopText("GM")

	_, err := studio.GenerateAndSave(context.Background())
	if !errors.Is(err, domain.ErrNoTemplate) {
		t.Fatalf("Expected ErrNoTemplate, got %v", err)
	}
}

func TestSettingsPersistAndRestore(t *testing.T) {
	settings := newFakeSettings()
	studio, _ := newTestStudio(t, settings)

	studio.SetTopText("HODL")
	studio.SetBottomText("NEVER SELL")
	if !studio.SetTextColor("#FFFFFF") {
		t.Fatal("Valid color rejected")
	}
	if studio.SetOutlineColor("blue") {
		t.Fatal("Invalid color accepted")
	}

	if settings.values[storage.KeyTopText] != "HODL" {
		t.Errorf("Top text not persisted: %q", settings.values[storage.KeyTopText])
	}
	if settings.values[storage.KeyTextColor] != "#FFFFFF" {
		t.Errorf("Text color not persisted: %q", settings.values[storage.KeyTextColor])
	}
	if _, ok := settings.values[storage.KeyOutlineColor]; ok {
		t.Error("Rejected color must not be persisted")
	}

	restored, _ := newTestStudio(t, settings)
	restored.RestoreSettings(context.Background())
	top, bottom := restored.Captions()
	if top != "HODL" || bottom != "NEVER SELL" {
		t.Errorf("Restored captions = %q / %q", top, bottom)
	}
	if restored.textColor != (color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}) {
		t.Errorf("Restored text color = %+v", restored.textColor)
	}
	if restored.outlineColor != render.DefaultOutlineColor {
		t.Errorf("Outline color should keep default, got %+v", restored.outlineColor)
	}
}

func TestRestoreSettings_IgnoresUnknownTemplate(t *testing.T) {
	settings := newFakeSettings()
	settings.values[storage.KeySelectedTemplateURL] = "https://evil.example/x.png"

	studio, _ := newTestStudio(t, settings)
	studio.RestoreSettings(context.Background())

	if studio.TemplateURL() != "" {
		t.Errorf("Out-of-catalog template was selected: %q", studio.TemplateURL())
	}
}

func TestPreviewLoop_CoalescesEdits(t *testing.T) {
	studio, _ := newTestStudio(t, newFakeSettings())
	studio.SetTemplateImage("x", testTemplate())

	var mu sync.Mutex
	var renders [][]byte
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		studio.RunPreviewLoop(ctx, 20*time.Millisecond, func(png []byte) {
			mu.Lock()
			renders = append(renders, png)
			mu.Unlock()
		})
	}()

	// A burst of edits inside one tick must produce a single redraw.
	studio.SetTopText("A")
	studio.SetTopText("AB")
	studio.SetTopText("ABC")

	time.Sleep(60 * time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(renders) != 1 {
		t.Fatalf("Rendered %d times, want 1 coalesced redraw", len(renders))
	}
	if !bytes.HasPrefix(renders[0], []byte("\x89PNG")) {
		t.Error("Preview output is not a PNG")
	}
}

func TestRandomizeTemplate_PersistsSelection(t *testing.T) {
	settings := newFakeSettings()
	studio, _ := newTestStudio(t, settings)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // keep the background fetch from going anywhere
	studio.RandomizeTemplate(ctx)

	url := studio.TemplateURL()
	if url == "" {
		t.Fatal("No template selected")
	}
	if _, known := render.FindTemplateByURL(url); !known {
		t.Errorf("Randomized selection %q is not in the catalog", url)
	}
	if settings.values[storage.KeySelectedTemplateURL] != url {
		t.Errorf("Selection not persisted: %q", settings.values[storage.KeySelectedTemplateURL])
	}
}
