package render

import "image/color"

// Category10 is the ten colour categorical palette used for clusters.
var Category10 = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xff, 0x7f, 0x0e, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x94, 0x67, 0xbd, 0xff},
	{0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
	{0xbc, 0xbd, 0x22, 0xff},
	{0x17, 0xbe, 0xcf, 0xff},
}

// colorOf returns the palette entry for a cluster id. Negative ids are black.
func colorOf(palette []color.RGBA, id int) color.RGBA {
	if id < 0 || len(palette) == 0 {
		return color.RGBA{0, 0, 0, 0xff}
	}
	return palette[id%len(palette)]
}

// translucent scales c to alpha a in premultiplied form.
func translucent(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(uint32(v) * uint32(a) / 0xff)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), a}
}
