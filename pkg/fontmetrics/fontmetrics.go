// Package fontmetrics measures label text extents from a real outline
// font, so the placement engine sizes label boxes from actual glyph
// advances instead of a guessed average character width.
package fontmetrics

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// TextMeasurer is what the loader needs from a font face: label width and
// line height. Satisfied by *Face; callers may substitute a fake in tests.
type TextMeasurer interface {
	Measure(s string) (float64, error)
	LineHeight() float64
}

// Face wraps a parsed SFNT font (TrueType or OpenType) at a fixed point
// size, providing the text measurements label placement needs.
type Face struct {
	sfnt    *sfnt.Font
	ptSize  float64
	mu      sync.Mutex // sfnt.Buffer is not safe for concurrent use
	buf     sfnt.Buffer
	ascent  float64
	descent float64
}

// LoadFace reads a font file from disk and prepares it at ptSize points.
func LoadFace(path string, ptSize float64) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontmetrics: read %s: %w", path, err)
	}
	return ParseFace(data, ptSize)
}

// ParseFace prepares an in-memory font at ptSize points.
func ParseFace(data []byte, ptSize float64) (*Face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontmetrics: parse font: %w", err)
	}

	face := &Face{sfnt: f, ptSize: ptSize}
	metrics, err := f.Metrics(&face.buf, fixedFromFloat(ptSize), font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("fontmetrics: metrics: %w", err)
	}
	face.ascent = fixedToFloat(metrics.Ascent)
	face.descent = fixedToFloat(metrics.Descent)
	return face, nil
}

// LineHeight is the font's nominal ascent plus descent at this face's size.
func (f *Face) LineHeight() float64 {
	return f.ascent + f.descent
}

// Measure returns the pixel width of s rendered at this face's size, summing
// each rune's glyph advance. Runes missing from the font fall back to the
// font's notdef advance rather than failing the whole measurement.
func (f *Face) Measure(s string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var total fixed.Int26_6
	for _, r := range s {
		idx, err := f.sfnt.GlyphIndex(&f.buf, r)
		if err != nil {
			return 0, fmt.Errorf("fontmetrics: glyph index for %q: %w", r, err)
		}
		adv, err := f.sfnt.GlyphAdvance(&f.buf, idx, fixedFromFloat(f.ptSize), font.HintingNone)
		if err != nil {
			return 0, fmt.Errorf("fontmetrics: glyph advance for %q: %w", r, err)
		}
		total += adv
	}
	return fixedToFloat(total), nil
}

func fixedFromFloat(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
