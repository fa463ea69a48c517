package render

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"odinary_go/internal/domain"
)

// Fixed palette defaults; user overrides are validated against hexColorRe.
var (
	DefaultTextColor    = color.NRGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF} // #F2F2F2
	DefaultOutlineColor = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF} // #101010

	backgroundColor = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	watermarkColor  = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x99} // 60% white
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ParseHexColor parses a strict 6-hex-digit color like "#F2F2F2".
func ParseHexColor(s string) (color.NRGBA, bool) {
	if !hexColorRe.MatchString(s) {
		return color.NRGBA{}, false
	}
	var c color.NRGBA
	c.A = 0xFF
	hex := func(b byte) uint8 {
		switch {
		case b >= '0' && b <= '9':
			return b - '0'
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10
		default:
			return b - 'A' + 10
		}
	}
	c.R = hex(s[1])<<4 | hex(s[2])
	c.G = hex(s[3])<<4 | hex(s[4])
	c.B = hex(s[5])<<4 | hex(s[6])
	return c, true
}

// Composer renders captioned meme images. It owns the embedded bold font
// and a face cache; Compose itself mutates no shared state and is safe
// for concurrent use.
type Composer struct {
	fnt *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewComposer parses the embedded caption font.
func NewComposer() (*Composer, error) {
	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &Composer{fnt: fnt, faces: make(map[float64]font.Face)}, nil
}

func (c *Composer) face(size float64) (font.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[size] = f
	return f, nil
}

// Measure reports the rendered width of text at the given font size. It
// satisfies MeasureFunc for the layout engine.
func (c *Composer) Measure(text string, fontSize float64) float64 {
	f, err := c.face(fontSize)
	if err != nil {
		return 0
	}
	return float64(font.MeasureString(f, text)) / 64
}

// Compose renders the full meme: dark background, aspect-fit centered
// template, top and bottom caption blocks with stroke-then-fill text, and
// the watermark drawn last so it is never occluded. The result is
// PNG-encoded bytes.
//
// A nil template returns ErrNoTemplate so preview callers can decline to
// draw; encode failures come back as ExportError with a remediation hint.
func (c *Composer) Compose(tpl image.Image, topText, bottomText string, textColor, outlineColor color.Color, width, height int) ([]byte, error) {
	if tpl == nil {
		return nil, domain.ErrNoTemplate
	}
	if width <= 0 || height <= 0 {
		return nil, domain.NewValidationError("surface dimensions must be positive")
	}
	if textColor == nil {
		textColor = DefaultTextColor
	}
	if outlineColor == nil {
		outlineColor = DefaultOutlineColor
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	// Scale to fit while preserving aspect ratio, then center.
	fitted := imaging.Fit(tpl, width, height, imaging.Lanczos)
	offsetX := (width - fitted.Bounds().Dx()) / 2
	offsetY := (height - fitted.Bounds().Dy()) / 2
	dc.DrawImage(fitted, offsetX, offsetY)

	w, h := float64(width), float64(height)
	if err := c.drawCaption(dc, topText, w, h, false, textColor, outlineColor); err != nil {
		return nil, err
	}
	if err := c.drawCaption(dc, bottomText, w, h, true, textColor, outlineColor); err != nil {
		return nil, err
	}
	if err := c.drawWatermark(dc, topText, bottomText, w, h); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dc.Image(), imaging.PNG); err != nil {
		return nil, domain.NewExportError(err)
	}
	return buf.Bytes(), nil
}

func (c *Composer) drawCaption(dc *gg.Context, text string, w, h float64, bottom bool, textColor, outlineColor color.Color) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	padding := w * 0.05
	layout := FitText(c.Measure, text, w-padding*2, h*0.4, math.Floor(w/8))
	f, err := c.face(layout.FontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(f)

	startY := padding
	if bottom {
		// Lines stack upward so the block's bottom aligns to the padding.
		startY = h - padding - layout.Height()
	}

	strokeWidth := math.Max(layout.FontSize/8, 2)
	for i, line := range layout.Lines {
		y := startY + float64(i)*layout.LineHeight
		c.strokeFillString(dc, line, w/2, y, strokeWidth, textColor, outlineColor)
	}
	return nil
}

// strokeFillString emulates canvas strokeText+fillText: the outline is
// drawn as offset copies within the stroke radius, then the fill on top.
func (c *Composer) strokeFillString(dc *gg.Context, line string, x, y, strokeWidth float64, textColor, outlineColor color.Color) {
	r := int(math.Ceil(strokeWidth / 2))
	dc.SetColor(outlineColor)
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			dc.DrawStringAnchored(line, x+float64(dx), y+float64(dy), 0.5, 1)
		}
	}
	dc.SetColor(textColor)
	dc.DrawStringAnchored(line, x, y, 0.5, 1)
}

func (c *Composer) drawWatermark(dc *gg.Context, topText, bottomText string, w, h float64) error {
	f, err := c.face(math.Max(w/40, 10))
	if err != nil {
		return err
	}
	dc.SetFontFace(f)
	dc.SetColor(watermarkColor)
	dc.DrawStringAnchored(WatermarkText(topText, bottomText), w-10, h-10, 1, 0)
	return nil
}
