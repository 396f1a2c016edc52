package fits

import(
	"fmt"

	"github.com/pmcg31/qtfits-poc/pkg/fitsfile"
)

const(
	maxAxes = 3

	// Channel axis values.
	Mono         = 0
	ChannelFirst = 1  // NAXIS1 == 3, samples interleaved per pixel
	ChannelLast  = 3  // NAXIS3 == 3, three planes of width*height
)

// A Descriptor is the validated geometry and pixel type of an image.
type Descriptor struct {
	AxisCount          int
	AxisLengths        [maxAxes]int  // unread axes are 1
	ChannelAxis        int           // Mono, ChannelFirst or ChannelLast
	Width              int
	Height             int
	PixelCount         int           // Width*Height*Channels()
	Encoding           Encoding

	TypeLabel          string
	SizeAndColorLabel  string
}

func (d Descriptor)IsColor() bool { return d.ChannelAxis != Mono }

func (d Descriptor)Channels() int {
	if d.IsColor() {
		return 3
	}
	return 1
}

// Index maps a pixel (y*Width + x) and a channel onto the offset of that
// sample in the raw buffer, whichever way the channels are stored.
func (d Descriptor)Index(pixel, channel int) int {
	switch d.ChannelAxis {
	case ChannelFirst: return 3*pixel + channel
	case ChannelLast:  return channel*d.Width*d.Height + pixel
	}
	return pixel
}

func (d Descriptor)String() string {
	return fmt.Sprintf("%s, %s", d.SizeAndColorLabel, d.TypeLabel)
}

// NewDescriptor queries the handle and validates what it finds.
func NewDescriptor(h fitsfile.Handle) (Descriptor, error) {
	d := Descriptor{}

	n, err := h.AxisCount()
	if err != nil {
		return Descriptor{}, fromReader("axis count", err)
	}
	if n < 2 {
		return Descriptor{}, newLoadError(UnsupportedGeometry, fmt.Sprintf("too few axes (%d) to be a real image", n))
	} else if n > maxAxes {
		return Descriptor{}, newLoadError(UnsupportedGeometry, fmt.Sprintf("too many axes (%d) to be a real image", n))
	}
	d.AxisCount = n

	lengths, err := h.AxisLengths(maxAxes)
	if err != nil {
		return Descriptor{}, fromReader("axis lengths", err)
	}
	for i := 0; i < maxAxes; i++ {
		d.AxisLengths[i] = 1
		if i < len(lengths) {
			d.AxisLengths[i] = lengths[i]
		}
	}

	if err := d.findChannelAxis(); err != nil {
		return Descriptor{}, err
	}

	d.PixelCount = d.Width * d.Height * d.Channels()

	if d.IsColor() {
		d.SizeAndColorLabel = fmt.Sprintf("%dx%d Color image; color axis %d", d.Width, d.Height, d.ChannelAxis)
	} else {
		d.SizeAndColorLabel = fmt.Sprintf("%dx%d image", d.Width, d.Height)
	}

	bitpix, err := h.PixelType()
	if err != nil {
		return Descriptor{}, fromReader("pixel type", err)
	}
	enc, ok := FromBitpix(bitpix)
	if !ok {
		return Descriptor{}, newLoadError(UnsupportedEncoding, fmt.Sprintf("unknown bit depth (BITPIX %d)", bitpix))
	}
	d.Encoding = enc
	d.TypeLabel = enc.Label()

	return d, nil
}

// findChannelAxis sets ChannelAxis, Width and Height from the axis lengths.
// A 3-axis image needs exactly one axis of length 3, and it must be the first
// or the last one.
func (d *Descriptor)findChannelAxis() error {
	ax := d.AxisLengths

	for i := 0; i < d.AxisCount; i++ {
		if ax[i] <= 0 {
			return newLoadError(UnsupportedGeometry, fmt.Sprintf("axis %d has length %d", i+1, ax[i]))
		}
	}

	if d.AxisCount == 2 {
		d.ChannelAxis = Mono
		d.Width, d.Height = ax[0], ax[1]
		return nil
	}

	nThrees := 0
	for i := 0; i < maxAxes; i++ {
		if ax[i] == 3 {
			nThrees++
		}
	}

	switch {
	case nThrees == 1 && ax[2] == 3:
		d.ChannelAxis = ChannelLast
		d.Width, d.Height = ax[0], ax[1]
	case nThrees == 1 && ax[0] == 3:
		d.ChannelAxis = ChannelFirst
		d.Width, d.Height = ax[1], ax[2]
	default:
		return newLoadError(AmbiguousColorAxis,
			fmt.Sprintf("found 3 axes %dx%dx%d, but can't figure out RGB dimension", ax[0], ax[1], ax[2]))
	}

	return nil
}
