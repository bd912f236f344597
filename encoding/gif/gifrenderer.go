package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Sample 100000`
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
	for i := range grayPalette {
		grayPalette[i] = color.Gray{uint8(i)}
	}
}

var grayPalette = make(color.Palette, 256)

// Encoder renders the visible states of a Gibbs chain, one frame per state.
// Each visible unit is a square cell; a unit that is on is drawn black and a
// unit that is off is drawn white. Real-valued states are drawn in grey.
type Encoder struct {
	H, W int
	font.Drawer
	io.Writer

	out  *gif.GIF
	face font.Face

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	cell        int // side of a unit's square in pixels
	units       int
	Delay       int // per frame, in 100ths of a second
	initialized bool
}

// NewGifEncoder with height and width
func NewGifEncoder(h, w int) *Encoder {
	return &Encoder{
		H:    -1,
		W:    -1,
		maxH: h,
		maxW: w,
		padH: 10,
		padW: 10,
		cell: 32,

		Delay: 50,
		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: 0},
	}
}

// Encode draws sample, the visible state at the given step of the chain, as a new frame.
func (enc *Encoder) Encode(step int, sample []float32) error {
	if len(sample) == 0 {
		return errors.New("cannot encode an empty sample")
	}
	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	if !enc.initialized {
		enc.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.Drawer.Src = image.Black
		enc.Drawer.Face = enc.face

		enc.units = len(sample)
		maxW := maxInt(enc.units*enc.cell, font.MeasureString(enc.Face, dummyLongString).Ceil())
		w := maxW + 2*enc.padW
		h := enc.cell + dy + 2*enc.padH

		w = minInt(w, enc.maxW)
		h = minInt(h, enc.maxH)
		if w == enc.maxW {
			enc.padW = 0
		}
		if h == enc.maxH {
			enc.padH = 0
		}
		enc.H = h
		enc.W = w
		enc.initialized = true
	}
	if len(sample) != enc.units {
		return errors.Errorf("expected a sample of %d units, got %d", enc.units, len(sample))
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), grayPalette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)
	for i, v := range sample {
		x := enc.padW + i*enc.cell
		r := image.Rect(x+1, enc.padH+1, x+enc.cell-1, enc.padH+enc.cell-1)
		draw.Draw(im, r, image.NewUniform(intensity(v)), image.Point{}, draw.Src)
	}

	enc.Dst = im
	enc.Dot = fixed.P(enc.padW, enc.padH+enc.cell+dy)
	enc.DrawString(fmt.Sprintf("Sample %d", step))

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, enc.Delay)
	return nil
}

// EncodeAll encodes every row of samples as a frame.
func (enc *Encoder) EncodeAll(samples *tensor.Dense) error {
	rows, err := native.MatrixF32(samples)
	if err != nil {
		return errors.Wrapf(err, "unable to read samples of shape %v", samples.Shape())
	}
	for i, row := range rows {
		if err = enc.Encode(i, row); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("no writer to flush the gif into")
	}
	if len(enc.out.Image) == 0 {
		return errors.New("no frames were encoded")
	}
	return gif.EncodeAll(enc.Writer, enc.out)
}

// intensity maps an activation in [0,1] to a grey, 1 being black.
func intensity(v float32) color.Gray {
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	return color.Gray{uint8(math.Round(float64(255 * (1 - v))))}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
