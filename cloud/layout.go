package cloud

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"doccloud/text"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// PlacedWord is one word as drawn. Bounds are canvas coordinates, before output scaling.
type PlacedWord struct {
	Word      string
	Count     int
	Frequency float64 // Count relative to the most frequent word
	FontSize  int
	Bounds    image.Rectangle
	Vertical  bool
	Color     color.RGBA
}

// layout places words largest first. Each word starts from the previous word's size
// scaled by relative frequency, tries the other orientation once, then shrinks by
// FontStep until a free spot exists. Once a word no longer fits at MinFontSize the
// layout stops, since every later word would be smaller still.
func (r *Renderer) layout(words []text.WordCount, rng *rand.Rand, faces *faceCache, fontSize int) (*image.RGBA, []PlacedWord, error) {
	o := r.options

	canvas := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(o.Background), image.Point{}, draw.Src)
	occ := newOccupancy(o.Width, o.Height)

	var placed []PlacedWord
	if len(words) == 0 {
		return canvas, placed, nil
	}

	maxCount := float64(words[0].Count)
	lastFreq := 1.0

	for i, wc := range words {
		freq := float64(wc.Count) / maxCount
		if freq == 0 {
			continue
		}
		if o.RelativeScaling != 0 && i != 0 {
			fontSize = int(math.RoundToEven((o.RelativeScaling*(freq/lastFreq) + (1 - o.RelativeScaling)) * float64(fontSize)))
		}

		vertical := rng.Float64() >= o.PreferHorizontal
		triedOther := false

		var (
			face    font.Face
			box     glyphBox
			spot    image.Point
			found   bool
			inkless bool
			err     error
		)
		for fontSize >= o.MinFontSize {
			face, err = faces.face(fontSize)
			if err != nil {
				return nil, nil, err
			}
			box = measure(face, wc.Display)
			if box.w <= 0 || box.h <= 0 {
				inkless = true
				break
			}

			w, h := box.w, box.h
			if vertical {
				w, h = h, w
			}
			if spot, found = occ.sample(w+o.Margin, h+o.Margin, rng); found {
				break
			}

			if !triedOther && o.PreferHorizontal < 1 {
				vertical = !vertical
				triedOther = true
			} else {
				fontSize -= o.FontStep
				vertical = o.PreferHorizontal == 0
			}
		}

		if inkless {
			r.logger.Debug("skipping word without ink", zap.String("word", wc.Display))
			continue
		}
		if !found {
			break
		}

		at := spot.Add(image.Point{X: o.Margin / 2, Y: o.Margin / 2})
		mask := glyphMask(face, wc.Display, box, vertical)
		ink := randomColor(rng)
		bounds := mask.Bounds().Add(at)

		draw.DrawMask(canvas, bounds, image.NewUniform(ink), image.Point{}, mask, image.Point{}, draw.Over)
		occ.mark(mask, at)

		placed = append(placed, PlacedWord{
			Word:      wc.Display,
			Count:     wc.Count,
			Frequency: freq,
			FontSize:  fontSize,
			Bounds:    bounds,
			Vertical:  vertical,
			Color:     ink,
		})
		lastFreq = freq
	}

	return canvas, placed, nil
}
