package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"odinary_go/internal/domain"
)

func testTemplate(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer()
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}
	return c
}

func TestCompose_ProducesDecodablePNG(t *testing.T) {
	c := newTestComposer(t)

	out, err := c.Compose(testTemplate(300, 200), "GM", "WAGMI", nil, nil, 400, 400)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Output is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 400 {
		t.Errorf("Output dimensions = %v, want 400x400", img.Bounds())
	}
}

func TestCompose_NilTemplate(t *testing.T) {
	c := newTestComposer(t)

	_, err := c.Compose(nil, "GM", "WAGMI", nil, nil, 400, 400)
	if !errors.Is(err, domain.ErrNoTemplate) {
		t.Errorf("Expected ErrNoTemplate, got %v", err)
	}
}

func TestCompose_InvalidDimensions(t *testing.T) {
	c := newTestComposer(t)

	_, err := c.Compose(testTemplate(10, 10), "GM", "", nil, nil, 0, 400)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	c := newTestComposer(t)
	tpl := testTemplate(256, 256)

	first, err := c.Compose(tpl, "seize the memes", "of production", nil, nil, 320, 320)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	second, err := c.Compose(tpl, "seize the memes", "of production", nil, nil, 320, 320)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Identical inputs must produce byte-identical output")
	}
}

func TestCompose_TextChangesOutput(t *testing.T) {
	c := newTestComposer(t)
	tpl := testTemplate(256, 256)

	a, err := c.Compose(tpl, "GM", "", nil, nil, 320, 320)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	b, err := c.Compose(tpl, "GN", "", nil, nil, 320, 320)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if bytes.Equal(a, b) {
		t.Error("Different captions should change the rendered bytes")
	}
}

func TestCompose_EmptyCaptionsStillWatermarked(t *testing.T) {
	c := newTestComposer(t)

	// No caption text is fine at the composer level; the save flow
	// validates emptiness separately. The watermark still renders.
	plain, err := c.Compose(testTemplate(64, 64), "", "", nil, nil, 128, 128)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(plain) == 0 {
		t.Error("Expected PNG bytes")
	}
}

func TestComposerMeasure(t *testing.T) {
	c := newTestComposer(t)

	small := c.Measure("WAGMI", 12)
	large := c.Measure("WAGMI", 48)
	if small <= 0 {
		t.Fatalf("Measure returned %v, want > 0", small)
	}
	if large <= small {
		t.Errorf("Width at size 48 (%v) should exceed width at size 12 (%v)", large, small)
	}

	short := c.Measure("GM", 24)
	long := c.Measure("GM WAGMI", 24)
	if long <= short {
		t.Errorf("Longer text should measure wider: %v vs %v", long, short)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#F2F2F2", color.NRGBA{0xF2, 0xF2, 0xF2, 0xFF}, true},
		{"#101010", color.NRGBA{0x10, 0x10, 0x10, 0xFF}, true},
		{"#abcdef", color.NRGBA{0xAB, 0xCD, 0xEF, 0xFF}, true},
		{"F2F2F2", color.NRGBA{}, false},
		{"#F2F", color.NRGBA{}, false},
		{"#GGGGGG", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseHexColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
