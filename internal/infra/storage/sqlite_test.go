package storage

import (
	"path/filepath"
	"testing"

	"odinary_go/internal/domain"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorageAt(filepath.Join(t.TempDir(), "odinary.db"))
	if err != nil {
		t.Fatalf("Failed to open test storage: %v", err)
	}
	return s
}

func TestMemeRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	memes := domain.SeedMemes()
	memes[0].Score = 721
	memes[1].Minted = true

	if err := s.SaveMemes(memes); err != nil {
		t.Fatalf("SaveMemes failed: %v", err)
	}

	loaded, ok, err := s.LoadMemes()
	if err != nil {
		t.Fatalf("LoadMemes failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected stored collection to be found")
	}
	if len(loaded) != len(memes) {
		t.Fatalf("Loaded %d memes, want %d", len(loaded), len(memes))
	}
	for i := range memes {
		if loaded[i] != memes[i] {
			t.Errorf("Meme %d mismatch after round trip:\n got %+v\nwant %+v", i, loaded[i], memes[i])
		}
	}
}

func TestLoadMemes_Empty(t *testing.T) {
	s := newTestStorage(t)

	memes, ok, err := s.LoadMemes()
	if err != nil {
		t.Fatalf("LoadMemes failed: %v", err)
	}
	if ok || memes != nil {
		t.Errorf("Fresh store should report nothing saved, got ok=%v memes=%v", ok, memes)
	}
}

func TestSaveMemes_Overwrites(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveMemes(domain.SeedMemes()); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	replacement := []domain.Meme{{ID: "meme-1", Caption: "ONLY ONE"}}
	if err := s.SaveMemes(replacement); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	loaded, _, err := s.LoadMemes()
	if err != nil {
		t.Fatalf("LoadMemes failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "meme-1" {
		t.Errorf("Save should fully replace the collection, got %+v", loaded)
	}
}

func TestCommentRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	comments := []domain.Comment{
		{ID: "comment-aaaa1111", Author: "anon", Text: "gm", Timestamp: 1700000000000},
		{ID: "comment-bbbb2222", Author: "anon", Text: "wagmi", Timestamp: 1700000001000},
	}
	if err := s.SaveComments("meme-1", comments); err != nil {
		t.Fatalf("SaveComments failed: %v", err)
	}

	loaded, ok, err := s.LoadComments("meme-1")
	if err != nil {
		t.Fatalf("LoadComments failed: %v", err)
	}
	if !ok || len(loaded) != 2 {
		t.Fatalf("Loaded ok=%v len=%d, want thread of 2", ok, len(loaded))
	}
	if loaded[1] != comments[1] {
		t.Errorf("Comment mismatch: got %+v want %+v", loaded[1], comments[1])
	}

	// Threads are keyed per meme.
	other, ok, err := s.LoadComments("meme-2")
	if err != nil {
		t.Fatalf("LoadComments failed: %v", err)
	}
	if ok || other != nil {
		t.Errorf("Uncommented meme should have no thread, got ok=%v %v", ok, other)
	}
}

func TestSettingRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveSetting(KeyTextColor, "#F2F2F2"); err != nil {
		t.Fatalf("SaveSetting failed: %v", err)
	}
	if err := s.SaveSetting(KeyTextColor, "#FFFFFF"); err != nil {
		t.Fatalf("SaveSetting overwrite failed: %v", err)
	}

	got, ok, err := s.LoadSetting(KeyTextColor)
	if err != nil {
		t.Fatalf("LoadSetting failed: %v", err)
	}
	if !ok || got != "#FFFFFF" {
		t.Errorf("LoadSetting = %q ok=%v, want latest value", got, ok)
	}

	_, ok, err = s.LoadSetting(KeyTopText)
	if err != nil {
		t.Fatalf("LoadSetting failed: %v", err)
	}
	if ok {
		t.Error("Unset setting should report not found")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odinary.db")

	first, err := NewStorageAt(path)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	if err := first.SaveSetting(KeySelectedTemplateURL, "https://example.com/t.png"); err != nil {
		t.Fatalf("SaveSetting failed: %v", err)
	}

	second, err := NewStorageAt(path)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	got, ok, err := second.LoadSetting(KeySelectedTemplateURL)
	if err != nil {
		t.Fatalf("LoadSetting failed: %v", err)
	}
	if !ok || got != "https://example.com/t.png" {
		t.Errorf("Reopened store lost data: %q ok=%v", got, ok)
	}
}
