package cloud

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Options controls canvas geometry and the layout heuristics.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	Width            int
	Height           int
	Background       color.RGBA
	MinFontSize      int
	MaxFontSize      int // 0 derives the size from the two most frequent words
	FontStep         int
	MaxWords         int
	Margin           int
	PreferHorizontal float64
	RelativeScaling  float64
	Scale            float64 // Output raster size relative to the canvas, resampled bilinearly
	Seed             int64   // 0 seeds from the text itself
	FontPath         string  // Empty uses the embedded Go Regular face
}

func DefaultOptions() Options {
	return Options{
		Width:            800,
		Height:           400,
		Background:       color.RGBA{A: 0xff},
		MinFontSize:      10,
		FontStep:         1,
		MaxWords:         200,
		Margin:           2,
		PreferHorizontal: 0.9,
		RelativeScaling:  0.5,
		Scale:            1,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("canvas must be positive, got %dx%d", o.Width, o.Height)
	case o.MinFontSize <= 0:
		return fmt.Errorf("min font size must be positive, got %d", o.MinFontSize)
	case o.MaxFontSize < 0:
		return fmt.Errorf("max font size must not be negative, got %d", o.MaxFontSize)
	case o.MaxFontSize > 0 && o.MaxFontSize < o.MinFontSize:
		return fmt.Errorf("max font size %d is below min font size %d", o.MaxFontSize, o.MinFontSize)
	case o.FontStep <= 0:
		return fmt.Errorf("font step must be positive, got %d", o.FontStep)
	case o.MaxWords <= 0:
		return fmt.Errorf("max words must be positive, got %d", o.MaxWords)
	case o.Margin < 0:
		return fmt.Errorf("margin must not be negative, got %d", o.Margin)
	case o.PreferHorizontal < 0 || o.PreferHorizontal > 1:
		return fmt.Errorf("prefer horizontal must be within [0, 1], got %g", o.PreferHorizontal)
	case o.RelativeScaling < 0 || o.RelativeScaling > 1:
		return fmt.Errorf("relative scaling must be within [0, 1], got %g", o.RelativeScaling)
	case o.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %g", o.Scale)
	}
	return nil
}

// ParseColor accepts an SVG color name ("black") or a hex triplet ("#0e1117", "#fff").
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
