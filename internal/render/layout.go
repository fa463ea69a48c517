package render

import "strings"

const (
	// MinFontSize is the floor below which the fitter stops shrinking and
	// accepts vertical overflow.
	MinFontSize = 10.0

	fontStep       = 2.0
	lineHeightMult = 1.2
)

// MeasureFunc reports the rendered width of text at a given font size.
// The drawing surface supplies it; the layout engine stays pure.
type MeasureFunc func(text string, fontSize float64) float64

// Layout is a word-wrapped caption block at its chosen font size.
type Layout struct {
	Lines      []string
	FontSize   float64
	LineHeight float64
}

// Height is the total vertical extent of the block.
func (l Layout) Height() float64 {
	return float64(len(l.Lines)) * l.LineHeight
}

// FitText computes the word-wrapped line set and the largest font size,
// starting at startSize, whose wrapped block fits within maxHeight.
// The size shrinks in fixed steps down to MinFontSize, at which point the
// overflow is accepted. Re-running with unchanged inputs yields an
// identical layout: the function has no side effects.
func FitText(measure MeasureFunc, text string, maxWidth, maxHeight, startSize float64) Layout {
	if strings.TrimSpace(text) == "" {
		return Layout{FontSize: startSize, LineHeight: startSize * lineHeightMult}
	}

	for size := startSize; size > MinFontSize; size -= fontStep {
		lines := wrapWords(measure, text, maxWidth, size)
		lineHeight := size * lineHeightMult
		if float64(len(lines))*lineHeight <= maxHeight {
			return Layout{Lines: lines, FontSize: size, LineHeight: lineHeight}
		}
	}

	// Nothing fit: accept overflow at the floor size.
	return Layout{
		Lines:      wrapWords(measure, text, maxWidth, MinFontSize),
		FontSize:   MinFontSize,
		LineHeight: MinFontSize * lineHeightMult,
	}
}

// wrapWords greedily packs uppercased words into lines no wider than
// maxWidth. A single word wider than maxWidth still gets its own line.
func wrapWords(measure MeasureFunc, text string, maxWidth, fontSize float64) []string {
	words := strings.Fields(strings.ToUpper(text))
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if measure(test, fontSize) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = test
		}
	}
	return append(lines, current)
}
