package cloud

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func loadFont(path string) (*opentype.Font, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

// faceCache hands out one face per pixel size for the duration of a render.
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func newFaceCache(f *opentype.Font) *faceCache {
	return &faceCache{font: f, faces: make(map[int]font.Face)}
}

func (c *faceCache) face(size int) (font.Face, error) {
	if face, ok := c.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %dpx face: %w", size, err)
	}
	c.faces[size] = face
	return face, nil
}

func (c *faceCache) Close() {
	for size, face := range c.faces {
		face.Close()
		delete(c.faces, size)
	}
}

// glyphBox is the ink box of a string relative to its dot, in whole pixels.
type glyphBox struct {
	minX, minY int
	w, h       int
}

func measure(face font.Face, s string) glyphBox {
	b, _ := font.BoundString(face, s)
	x0, y0 := b.Min.X.Floor(), b.Min.Y.Floor()
	x1, y1 := b.Max.X.Ceil(), b.Max.Y.Ceil()
	return glyphBox{minX: x0, minY: y0, w: x1 - x0, h: y1 - y0}
}

// glyphMask rasterizes s into an alpha mask sized to its ink box,
// rotated a quarter turn counter-clockwise when vertical.
func glyphMask(face font.Face, s string, box glyphBox, vertical bool) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, box.w, box.h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(-box.minX), Y: fixed.I(-box.minY)},
	}
	d.DrawString(s)

	if vertical {
		return rotateCCW(mask)
	}
	return mask
}

func rotateCCW(src *image.Alpha) *image.Alpha {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewAlpha(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.SetAlpha(x, y, src.AlphaAt(b.Min.X+w-1-y, b.Min.Y+x))
		}
	}
	return dst
}
