package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
)

// A FloatGrid is a grid of floats, with some operations. We use it to hold
// one channel of an image for diagnostics.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

// DownSample returns a grid that is 1/4 of the size, averaging the values from the
// original. An axis that is already a single pixel stays at one pixel.
func (g1 *FloatGrid)DownSample() FloatGrid {
	width := max(1, g1.Dx() / 2)
	height := max(1, g1.Dy() / 2)
	g2 := NewFloatGrid(width, height)

	for y:=0; y<height; y++ {
		y0, y1 := min(2*y, g1.Dy()-1), min(2*y+1, g1.Dy()-1)
		for x:=0; x<width; x++ {
			x0, x1 := min(2*x, g1.Dx()-1), min(2*x+1, g1.Dx()-1)
			p := g1.Get(x0, y0)
			p += g1.Get(x1, y0)
			p += g1.Get(x0, y1)
			p += g1.Get(x1, y1)
			g2.Set(x, y, p/4.0)
		}
	}

	return g2
}

// Percentiles returns the values at the two fractions (in [0,1]) of the
// sorted finite values. NaNs are skipped. An all-NaN grid gives (0,0).
func (fg *FloatGrid)Percentiles(minPrct, maxPrct float64) (float64, float64) {
	vals := []float64{}
	for i:=0; i<len(fg.values); i++ {
		if v := fg.values[i]; !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}

	sort.Float64s(vals)

	iMin := int(minPrct * float64(len(vals)))
	iMax := int(maxPrct * float64(len(vals)))
	if iMin < 0          { iMin = 0 }
	if iMin >= len(vals) { iMin = len(vals)-1 }
	if iMax < 0          { iMax = 0 }
	if iMax >= len(vals) { iMax = len(vals)-1 }

	return vals[iMin], vals[iMax]
}

func (fg *FloatGrid)MinMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min

	for i:=0 ; i<len(fg.values) ; i++ {
		if math.IsNaN(fg.values[i]) { continue }
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return min, max
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision. Big grids are downsampled first. The title is drawn
// in the top left.
func (fg *FloatGrid)ToImg(title, filename string) error {
	g := fg
	for g.Dx() > 2048 || g.Dy() > 2048 {
		smaller := g.DownSample()
		g = &smaller
	}

	min, max := g.MinMax()
	span := max - min
	if span <= 0 {
		span = 1
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{g.Dx(), g.Dy()}})
	for x:=0; x<g.Dx(); x++ {
		for y:=0; y<g.Dy(); y++ {
			lum := g.Get(x,y)
			if math.IsNaN(lum) {
				lum = min
			}
			gray := GammaExpand_F64 ((lum - min) / span)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0.2,0.2)
	dc.DrawString(title, 10, 20)
	return dc.SavePNG(filename)
}
