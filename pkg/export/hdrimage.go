package export

import(
	"image"
	"image/color"
	"math"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/pmcg31/qtfits-poc/pkg/fits"
)

// HDRImage presents the normalized samples of a fits.Image as an unbounded
// float RGB image. Mono images are gray. Implements hdr.Image.
type HDRImage struct {
	Image  *fits.Image
	BGR     bool  // channel 0 is blue
}

func NewHDRImage(img *fits.Image, bgr bool) HDRImage {
	return HDRImage{Image: img, BGR: bgr}
}

// Implement image.Image
func (hi HDRImage)ColorModel() color.Model  { return hdrcolor.RGBModel }
func (hi HDRImage)Bounds() image.Rectangle  { return image.Rect(0, 0, hi.Image.Width(), hi.Image.Height()) }
func (hi HDRImage)At(x, y int) color.Color  { return hi.HDRAt(x, y) }

// Implement hdr.Image
func (hi HDRImage)Size() int                { return hi.Image.Width() * hi.Image.Height() }

func (hi HDRImage)HDRAt(x, y int) hdrcolor.Color {
	if !hi.Image.IsColor() {
		v := sample(hi.Image, x, y, 0)
		return hdrcolor.RGB{R: v, G: v, B: v}
	}

	r, g, b := sample(hi.Image, x, y, 0), sample(hi.Image, x, y, 1), sample(hi.Image, x, y, 2)
	if hi.BGR {
		r, b = b, r
	}
	return hdrcolor.RGB{R: r, G: g, B: b}
}

// Negative and NaN samples are black; there is no upper limit.
func sample(img *fits.Image, x, y, c int) float64 {
	v := img.Sample(x, y, c)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
