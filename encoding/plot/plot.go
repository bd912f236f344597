// Package plot renders training curves as PNG images.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/rbm"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var regular *truetype.Font

const (
	dpi        = 72.0
	fontsize   = 12.0
	lineheight = 1.4
	strokeW    = 1.5
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var (
	red   = color.RGBA{0xd6, 0x27, 0x28, 0xff}
	blue  = color.RGBA{0x1f, 0x77, 0xb4, 0xff}
	green = color.RGBA{0x2c, 0xa0, 0x2c, 0xff}
	frame = color.RGBA{0xb0, 0xb0, 0xb0, 0xff}
)

// Series is a named curve.
type Series struct {
	Name   string
	Values []float32
	Colour color.Color
}

// Encoder draws each series in its own panel, stacked top to bottom, every
// panel scaled to the range of its series.
type Encoder struct {
	H, W int
	font.Drawer
	io.Writer

	img        *image.RGBA
	padH, padW int
}

// New returns an encoder for a h × w image.
func New(h, w int) *Encoder {
	return &Encoder{
		H:    h,
		W:    w,
		padH: 8,
		padW: 12,
		Drawer: font.Drawer{
			Src: image.Black,
			Face: truetype.NewFace(regular, &truetype.Options{
				Size:    fontsize,
				DPI:     dpi,
				Hinting: font.HintingFull,
			}),
		},
	}
}

// Encode plots the reconstruction error and both energies recorded in stats.
func (enc *Encoder) Encode(stats rbm.Statistics) error {
	return enc.EncodeSeries(
		Series{Name: "reconstruction error", Values: stats.Errors(), Colour: red},
		Series{Name: "positive energy", Values: stats.PositiveEnergies(), Colour: blue},
		Series{Name: "negative energy", Values: stats.NegativeEnergies(), Colour: green},
	)
}

// EncodeSeries replaces the current image with one panel per series.
func (enc *Encoder) EncodeSeries(series ...Series) error {
	if len(series) == 0 {
		return errors.New("nothing to plot")
	}
	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	panelH := enc.H / len(series)
	plotH := panelH - dy - 2*enc.padH
	plotW := enc.W - 2*enc.padW
	if plotH < 2 || plotW < 2 {
		return errors.Errorf("a %d×%d image is too small for %d series", enc.W, enc.H, len(series))
	}

	for _, s := range series {
		if len(s.Values) == 0 {
			return errors.Errorf("series %q is empty", s.Name)
		}
	}

	enc.img = image.NewRGBA(image.Rect(0, 0, enc.W, enc.H))
	draw.Draw(enc.img, enc.img.Bounds(), image.White, image.Point{}, draw.Src)
	enc.Dst = enc.img
	for i, s := range series {
		lo, hi := bounds(s.Values)
		top := i*panelH + enc.padH
		enc.Dot = fixed.P(enc.padW, top+dy-dy/4)
		enc.DrawString(fmt.Sprintf("%s  [%.4g, %.4g] over %d epochs", s.Name, lo, hi, len(s.Values)))

		area := image.Rect(enc.padW, top+dy, enc.padW+plotW, top+dy+plotH)
		outline(enc.img, area, frame)
		enc.polyline(area, s.Values, lo, hi, s.Colour)
	}
	return nil
}

// Flush writes the PNG into the writer.
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("no writer to flush the plot into")
	}
	if enc.img == nil {
		return errors.New("nothing was plotted")
	}
	return png.Encode(enc.Writer, enc.img)
}

// polyline strokes values across area. Values are thinned to one per pixel column.
func (enc *Encoder) polyline(area image.Rectangle, values []float32, lo, hi float32, c color.Color) {
	w, h := float32(area.Dx()-1), float32(area.Dy()-1)
	step := len(values) / area.Dx()
	if step < 1 {
		step = 1
	}
	point := func(k int) (float32, float32) {
		x := w / 2
		if len(values) > 1 {
			x = w * float32(k) / float32(len(values)-1)
		}
		y := h / 2
		if hi > lo {
			y = h - h*(values[k]-lo)/(hi-lo)
		}
		return float32(area.Min.X) + x, float32(area.Min.Y) + y
	}

	z := vector.NewRasterizer(enc.W, enc.H)
	x0, y0 := point(0)
	for k := step; ; k += step {
		if k >= len(values) {
			k = len(values) - 1
		}
		x1, y1 := point(k)
		segment(z, x0, y0, x1, y1)
		x0, y0 = x1, y1
		if k == len(values)-1 {
			break
		}
	}
	if len(values) == 1 {
		segment(z, x0-2, y0, x0+2, y0)
	}
	z.Draw(enc.img, enc.img.Bounds(), image.NewUniform(c), image.Point{})
}

// segment adds a quad of width strokeW around the line from (x0,y0) to (x1,y1).
func segment(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	dx, dy := x1-x0, y1-y0
	l := math32.Sqrt(dx*dx + dy*dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*strokeW/2, dx/l*strokeW/2
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func bounds(a []float32) (lo, hi float32) {
	lo, hi = a[0], a[0]
	for _, v := range a[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
