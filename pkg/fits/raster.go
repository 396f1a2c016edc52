package fits

import(
	"math"

	"github.com/pmcg31/qtfits-poc/pkg/fitsfile"
)

// Sample is the set of element types a raster can hold, one per Encoding.
type Sample interface {
	~uint8 | ~uint16 | ~uint32 | ~float32 | ~float64
}

// A Raster is the fully read pixel buffer of one image. The only
// implementations are the five Pixels[T] instantiations; code that needs the
// typed values gets them with PixelsOf, code that doesn't uses Normalized.
type Raster interface {
	Encoding() Encoding
	Len() int

	// Normalized returns element i divided by the encoding's natural max.
	// Floats pass through unchanged, so may be NaN or outside [0,1].
	Normalized(i int) float64

	buffer() interface{}
}

// Pixels is a Raster of element type T.
type Pixels[T Sample] struct {
	enc    Encoding
	pix  []T
	scale  float64  // 1 / NaturalMax
}

func newPixels[T Sample](enc Encoding, n int) *Pixels[T] {
	return &Pixels[T]{enc: enc, pix: make([]T, n), scale: 1.0 / enc.NaturalMax()}
}

func (p *Pixels[T])Encoding() Encoding        { return p.enc }
func (p *Pixels[T])Len() int                  { return len(p.pix) }
func (p *Pixels[T])At(i int) T                { return p.pix[i] }
func (p *Pixels[T])Normalized(i int) float64  { return float64(p.pix[i]) * p.scale }
func (p *Pixels[T])buffer() interface{}       { return p.pix }

// Values exposes the raw buffer. Callers must not modify it.
func (p *Pixels[T])Values() []T { return p.pix }

// PixelsOf returns the typed view of r, if r holds elements of type T.
func PixelsOf[T Sample](r Raster) (*Pixels[T], bool) {
	p, ok := r.(*Pixels[T])
	return p, ok
}

// newRaster is the one place an Encoding picks an element type.
func newRaster(enc Encoding, n int) Raster {
	switch enc {
	case Int8:    return newPixels[uint8](enc, n)
	case Int16:   return newPixels[uint16](enc, n)
	case Int32:   return newPixels[uint32](enc, n)
	case Float32: return newPixels[float32](enc, n)
	case Float64: return newPixels[float64](enc, n)
	}
	return nil
}

// readRaster allocates d.PixelCount elements and fills them with one bulk read
// starting at the first pixel of every axis. On failure the buffer is dropped.
func readRaster(h fitsfile.Handle, d Descriptor) (Raster, error) {
	r := newRaster(d.Encoding, d.PixelCount)
	if r == nil {
		return nil, newLoadError(UnsupportedEncoding, d.Encoding.String())
	}

	first := make([]int, d.AxisCount)
	for i := range first {
		first[i] = 1
	}

	if err := h.ReadPixels(first, r.buffer()); err != nil {
		return nil, fromReader("read pixels", err)
	}

	return r, nil
}

// minMax scans for the finite extremes of the normalized values.
func minMax(r Raster) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for i := 0; i < r.Len(); i++ {
		v := r.Normalized(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < min { min = v }
		if v > max { max = v }
	}
	return min, max
}
