// Package render implements the meme composition pipeline: deterministic
// watermark tokens, adaptive text layout, and the raster composer.
package render

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

const (
	tokenPrefix   = "ODNRY"
	fallbackToken = "ODNRY1"
)

// WatermarkToken maps a caption pair to a short, stable, human-readable
// token. Identical inputs always yield identical output so re-rendering
// the same captions reproduces the same watermark.
//
// The digest is the classic base-31 multiplicative string hash computed
// over UTF-16 code units with 32-bit signed wraparound, rendered in
// uppercase base-36 and truncated to 4 characters.
func WatermarkToken(topText, bottomText string) string {
	combined := strings.TrimSpace(topText) + strings.TrimSpace(bottomText)
	if combined == "" {
		return fallbackToken
	}

	var hash int32
	for _, unit := range utf16.Encode([]rune(combined)) {
		hash = int32(unit) + (hash<<5 - hash)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}

	digits := strings.ToUpper(strconv.FormatInt(abs, 36))
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return tokenPrefix + digits
}

// WatermarkText is the string drawn onto the composed image.
func WatermarkText(topText, bottomText string) string {
	return "ODINARY • " + WatermarkToken(topText, bottomText)
}

// FileName is the download name for an exported meme.
func FileName(topText, bottomText string) string {
	return "odinary-" + strings.ToLower(WatermarkToken(topText, bottomText)) + ".png"
}
