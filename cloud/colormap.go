package cloud

import (
	"image/color"
	"math/rand/v2"
)

// viridis stops at 0, 0.1, ..., 1.
var viridis = [...]color.RGBA{
	{0x44, 0x01, 0x54, 0xff},
	{0x48, 0x24, 0x75, 0xff},
	{0x41, 0x44, 0x87, 0xff},
	{0x35, 0x5f, 0x8d, 0xff},
	{0x2a, 0x78, 0x8e, 0xff},
	{0x21, 0x91, 0x8c, 0xff},
	{0x22, 0xa8, 0x84, 0xff},
	{0x44, 0xbf, 0x70, 0xff},
	{0x7a, 0xd1, 0x51, 0xff},
	{0xbd, 0xdf, 0x26, 0xff},
	{0xfd, 0xe7, 0x25, 0xff},
}

// colormapAt linearly interpolates the viridis map at t in [0, 1].
func colormapAt(t float64) color.RGBA {
	if t <= 0 {
		return viridis[0]
	}
	last := len(viridis) - 1
	if t >= 1 {
		return viridis[last]
	}

	pos := t * float64(last)
	i := int(pos)
	frac := pos - float64(i)
	a, b := viridis[i], viridis[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*frac + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 0xff}
}

func randomColor(rng *rand.Rand) color.RGBA {
	return colormapAt(rng.Float64())
}
