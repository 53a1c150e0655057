package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/hupe1980/kmeansvis/internal/kmeans"
	"github.com/hupe1980/kmeansvis/model"
	"github.com/hupe1980/kmeansvis/voronoi"
	"github.com/paulmach/orb"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const circleSegments = 16

var black = color.RGBA{0, 0, 0, 0xff}

// Render draws a frame and encodes it as PNG.
func Render(w io.Writer, snap kmeans.Snapshot, cells []voronoi.Cell, bounds model.Bounds, opts ...Option) error {
	img, err := Draw(snap, cells, bounds, opts...)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Draw rasterizes a frame. The image is bounds rounded up to whole pixels.
func Draw(snap kmeans.Snapshot, cells []voronoi.Cell, bounds model.Bounds, opts ...Option) (*image.RGBA, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	width := int(math.Ceil(bounds.Width))
	height := int(math.Ceil(bounds.Height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)

	c := &canvas{img: img, z: vector.NewRasterizer(width, height)}

	if o.cellAlpha > 0 {
		for _, cell := range cells {
			if cell.Degenerate {
				continue
			}
			c.fillRing(cell.Ring, translucent(colorOf(o.palette, cell.ID), o.cellAlpha))
		}
	}

	for i, p := range snap.Points {
		id := -1
		if i < len(snap.Assignment) {
			id = snap.Assignment[i]
		}
		c.fillCircle(p, o.pointRadius, colorOf(o.palette, id))
	}

	for _, ct := range snap.Centroids {
		c.fillTriangle(ct.Point(), o.centroidR+3, black)
		c.fillTriangle(ct.Point(), o.centroidR, colorOf(o.palette, ct.ID))
	}

	if o.caption != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(black),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(6, 16),
		}
		d.DrawString(o.caption)
	}

	return img, nil
}

type canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

func (c *canvas) fill(col color.RGBA) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

func (c *canvas) fillRing(r orb.Ring, col color.RGBA) {
	if len(r) < 3 {
		return
	}
	c.z.MoveTo(float32(r[0][0]), float32(r[0][1]))
	for _, p := range r[1:] {
		c.z.LineTo(float32(p[0]), float32(p[1]))
	}
	c.z.ClosePath()
	c.fill(col)
}

func (c *canvas) fillCircle(p model.Point, radius float64, col color.RGBA) {
	ring := make(orb.Ring, 0, circleSegments)
	for i := range circleSegments {
		a := 2 * math.Pi * float64(i) / circleSegments
		ring = append(ring, orb.Point{p.X + radius*math.Cos(a), p.Y + radius*math.Sin(a)})
	}
	c.fillRing(ring, col)
}

// fillTriangle draws an upward equilateral triangle with circumradius r.
func (c *canvas) fillTriangle(p model.Point, r float64, col color.RGBA) {
	ring := make(orb.Ring, 0, 3)
	for i := range 3 {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/3
		ring = append(ring, orb.Point{p.X + r*math.Cos(a), p.Y + r*math.Sin(a)})
	}
	c.fillRing(ring, col)
}
