package cloud

import (
	"image"
	"math/rand/v2"
)

// occupancy records which canvas pixels already hold glyph ink and answers
// "is this box empty" in constant time through a summed-area table.
type occupancy struct {
	width, height int
	filled        []bool
	integral      []uint32 // (width+1) x (height+1), row-major
}

func newOccupancy(width, height int) *occupancy {
	return &occupancy{
		width:    width,
		height:   height,
		filled:   make([]bool, width*height),
		integral: make([]uint32, (width+1)*(height+1)),
	}
}

func (o *occupancy) sum(x0, y0, x1, y1 int) uint32 {
	stride := o.width + 1
	return o.integral[y1*stride+x1] - o.integral[y0*stride+x1] - o.integral[y1*stride+x0] + o.integral[y0*stride+x0]
}

func (o *occupancy) free(x, y, w, h int) bool {
	return o.sum(x, y, x+w, y+h) == 0
}

// sample picks a uniformly random top-left corner where a w x h box touches no ink.
func (o *occupancy) sample(w, h int, rng *rand.Rand) (image.Point, bool) {
	if w <= 0 || h <= 0 || w > o.width || h > o.height {
		return image.Point{}, false
	}

	rows := o.height - h + 1
	rowHits := make([]int, rows)
	hits := 0
	for y := 0; y < rows; y++ {
		for x := 0; x+w <= o.width; x++ {
			if o.free(x, y, w, h) {
				rowHits[y]++
			}
		}
		hits += rowHits[y]
	}
	if hits == 0 {
		return image.Point{}, false
	}

	goal := rng.IntN(hits)
	for y := 0; y < rows; y++ {
		if goal >= rowHits[y] {
			goal -= rowHits[y]
			continue
		}
		for x := 0; x+w <= o.width; x++ {
			if !o.free(x, y, w, h) {
				continue
			}
			if goal == 0 {
				return image.Point{X: x, Y: y}, true
			}
			goal--
		}
	}
	return image.Point{}, false
}

// mark records the ink of mask drawn with its origin at at, then rebuilds
// the table from the first touched row down.
func (o *occupancy) mark(mask *image.Alpha, at image.Point) {
	b := mask.Bounds()
	top := o.height
	for y := b.Min.Y; y < b.Max.Y; y++ {
		cy := at.Y + y - b.Min.Y
		if cy < 0 || cy >= o.height {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			cx := at.X + x - b.Min.X
			if cx < 0 || cx >= o.width {
				continue
			}
			if mask.AlphaAt(x, y).A > 0 {
				o.filled[cy*o.width+cx] = true
				top = min(top, cy)
			}
		}
	}
	o.rebuild(top)
}

func (o *occupancy) rebuild(fromRow int) {
	stride := o.width + 1
	for y := fromRow; y < o.height; y++ {
		var row uint32
		for x := 0; x < o.width; x++ {
			if o.filled[y*o.width+x] {
				row++
			}
			o.integral[(y+1)*stride+x+1] = o.integral[y*stride+x+1] + row
		}
	}
}
