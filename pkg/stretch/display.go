package stretch

import(
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// A Display is an 8-bit buffer ready to paint. Samples are interleaved per
// pixel, rows top to bottom in file order; Channels is 1 or 3 (R,G,B).
type Display struct {
	Width     int
	Height    int
	Channels  int
	Pix     []uint8
}

func newDisplay(w, h, channels int) *Display {
	return &Display{
		Width:    w,
		Height:   h,
		Channels: channels,
		Pix:      make([]uint8, w*h*channels),
	}
}

func (d *Display)ColorModel() color.Model {
	if d.Channels == 1 {
		return color.GrayModel
	}
	return color.RGBAModel
}

func (d *Display)Bounds() image.Rectangle { return image.Rect(0, 0, d.Width, d.Height) }

func (d *Display)At(x, y int) color.Color {
	if !(image.Point{x, y}.In(d.Bounds())) {
		return color.RGBA{}
	}
	i := (y*d.Width + x) * d.Channels
	if d.Channels == 1 {
		return color.Gray{d.Pix[i]}
	}
	return color.RGBA{d.Pix[i], d.Pix[i+1], d.Pix[i+2], 0xFF}
}

// RGB returns the three display bytes at (x,y); gray repeats its one value.
// (x,y) must be inside Bounds.
func (d *Display)RGB(x, y int) (uint8, uint8, uint8) {
	i := (y*d.Width + x) * d.Channels
	if d.Channels == 1 {
		return d.Pix[i], d.Pix[i], d.Pix[i]
	}
	return d.Pix[i], d.Pix[i+1], d.Pix[i+2]
}

// MeanColor averages the buffer in linear light.
func (d *Display)MeanColor() colorful.Color {
	n := d.Width * d.Height
	if n == 0 {
		return colorful.Color{}
	}

	linear := [256]float64{}
	for i := range linear {
		linear[i], _, _ = colorful.Color{R: float64(i) / 255.0}.LinearRgb()
	}

	var r, g, b float64
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			pr, pg, pb := d.RGB(x, y)
			r += linear[pr]
			g += linear[pg]
			b += linear[pb]
		}
	}

	return colorful.LinearRgb(r/float64(n), g/float64(n), b/float64(n)).Clamped()
}
