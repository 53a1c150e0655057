package render

import "image/color"

type options struct {
	background  color.RGBA
	palette     []color.RGBA
	cellAlpha   uint8
	pointRadius float64
	centroidR   float64
	caption     string
}

func defaultOptions() options {
	return options{
		background:  color.RGBA{0xff, 0xff, 0xff, 0xff},
		palette:     Category10,
		cellAlpha:   0x40,
		pointRadius: 3,
		centroidR:   8,
	}
}

// Option configures a frame.
type Option func(*options)

// WithBackground sets the background colour. Default white.
func WithBackground(c color.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithPalette sets the cluster palette. An empty palette is ignored.
func WithPalette(p []color.RGBA) Option {
	return func(o *options) {
		if len(p) > 0 {
			o.palette = p
		}
	}
}

// WithCellAlpha sets the opacity of Voronoi cell fills. 0 hides the cells.
func WithCellAlpha(a uint8) Option {
	return func(o *options) {
		o.cellAlpha = a
	}
}

// WithPointRadius sets the point radius in pixels. Default 3.
func WithPointRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.pointRadius = r
		}
	}
}

// WithCaption draws text in the top left corner, usually the phase label.
func WithCaption(s string) Option {
	return func(o *options) {
		o.caption = s
	}
}
