package fits

import(
	"fmt"
	"path/filepath"

	"github.com/pmcg31/qtfits-poc/pkg/emath"
)

// An Image is a validated descriptor plus its fully read raster. It is only
// built by Load, and nothing mutates it afterwards; the one owner drops it as
// a whole.
type Image struct {
	filename  string
	desc      Descriptor
	raster    Raster
}

func (img *Image)Descriptor() Descriptor     { return img.desc }
func (img *Image)Encoding() Encoding         { return img.desc.Encoding }
func (img *Image)Width() int                 { return img.desc.Width }
func (img *Image)Height() int                { return img.desc.Height }
func (img *Image)ChannelAxis() int           { return img.desc.ChannelAxis }
func (img *Image)IsColor() bool              { return img.desc.IsColor() }
func (img *Image)Channels() int              { return img.desc.Channels() }
func (img *Image)PixelCount() int            { return img.desc.PixelCount }
func (img *Image)Raster() Raster             { return img.raster }
func (img *Image)TypeLabel() string          { return img.desc.TypeLabel }
func (img *Image)SizeAndColorLabel() string  { return img.desc.SizeAndColorLabel }
func (img *Image)Filename() string           { return img.filename }

// Sample returns the normalized value of channel c at (x,y). The caller
// keeps x, y and c inside Width, Height and Channels; mono images ignore c.
func (img *Image)Sample(x, y, c int) float64 {
	return img.raster.Normalized(img.desc.Index(y*img.desc.Width+x, c))
}

// Range returns the smallest and largest finite normalized values.
func (img *Image)Range() (float64, float64) { return minMax(img.raster) }

// ChannelGrid copies one channel into a float grid, for diagnostics.
func (img *Image)ChannelGrid(c int) (emath.FloatGrid, error) {
	if c < 0 || c >= img.Channels() {
		return emath.FloatGrid{}, fmt.Errorf("channel %d out of range, image has %d", c, img.Channels())
	}

	g := emath.NewFloatGrid(img.Width(), img.Height())
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			g.Set(x, y, img.Sample(x, y, c))
		}
	}
	return g, nil
}

func (img *Image)String() string {
	return fmt.Sprintf("%s: %s", filepath.Base(img.filename), img.desc)
}
