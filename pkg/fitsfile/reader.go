// Package fitsfile supplies the primitive reads the image loader needs from a
// FITS file: open, axis geometry, pixel type and one bulk typed pixel read.
// The default implementation sits on github.com/astrogo/fitsio and only looks
// at the primary HDU.
package fitsfile

import(
	"fmt"
	"io"
	"os"

	"github.com/astrogo/fitsio"
)

// An Opener hands out Handles for named files.
type Opener interface {
	Open(filename string) (Handle, error)
}

// A Handle is one opened FITS file. Callers must Close it.
type Handle interface {
	AxisCount() (int, error)

	// AxisLengths returns maxAxes lengths; axes the file doesn't have are 1.
	AxisLengths(maxAxes int) ([]int, error)

	// PixelType returns the BITPIX tag of the primary image.
	PixelType() (int, error)

	// ReadPixels fills all of dst, starting at the 1-based coordinates in
	// first. dst must be one of []uint8, []uint16, []uint32, []float32 or
	// []float64. Values are converted to physical units (BSCALE, BZERO) and
	// clamped into the range of dst's element type.
	ReadPixels(first []int, dst interface{}) error

	Close() error
}

// OpenerFunc adapts a function into an Opener.
type OpenerFunc func(filename string) (Handle, error)

func (f OpenerFunc)Open(filename string) (Handle, error) { return f(filename) }

// Default opens files from the local filesystem.
var Default Opener = OpenerFunc(Open)

// Open reads the FITS structure of a local file.
func Open(filename string) (Handle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, newError("open", StatusFileNotOpened, err)
	}

	h, err := NewHandle(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	h.closer = file

	return h, nil
}

// NewHandle decodes the FITS structure from r. The caller keeps ownership of r.
func NewHandle(r io.Reader) (*FileHandle, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		status := StatusNotFITS
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			status = StatusEndOfFile
		}
		return nil, newError("open", status, err)
	}

	if len(f.HDUs()) == 0 {
		f.Close()
		return nil, newError("open", StatusNoImage, nil)
	}
	img, ok := f.HDU(0).(fitsio.Image)
	if !ok {
		f.Close()
		return nil, newError("open", StatusNoImage, nil)
	}

	return &FileHandle{file: f, img: img}, nil
}

// FileHandle is the fitsio backed Handle.
type FileHandle struct {
	file    *fitsio.File
	img      fitsio.Image
	closer   io.Closer  // the os.File, when we opened it ourselves
}

func (h *FileHandle)AxisCount() (int, error) {
	return len(h.img.Header().Axes()), nil
}

func (h *FileHandle)AxisLengths(maxAxes int) ([]int, error) {
	if maxAxes < 0 {
		return nil, newError("axis lengths", StatusBadFirstPixel, fmt.Errorf("maxAxes %d", maxAxes))
	}

	axes := h.img.Header().Axes()
	lengths := make([]int, maxAxes)
	for i := range lengths {
		lengths[i] = 1
		if i < len(axes) {
			lengths[i] = axes[i]
		}
	}
	return lengths, nil
}

func (h *FileHandle)PixelType() (int, error) {
	return h.img.Header().Bitpix(), nil
}

func (h *FileHandle)ReadPixels(first []int, dst interface{}) error {
	hdr := h.img.Header()
	axes := hdr.Axes()

	offset, err := firstPixelOffset(axes, first)
	if err != nil {
		return newError("read pixels", StatusBadFirstPixel, err)
	}

	scaling := scalingFromHeader(hdr)
	if err := decodeInto(h.img.Raw(), hdr.Bitpix(), offset, scaling, dst); err != nil {
		return err
	}
	return nil
}

func (h *FileHandle)Close() error {
	err := h.file.Close()
	if h.closer != nil {
		if cerr := h.closer.Close(); err == nil {
			err = cerr
		}
		h.closer = nil
	}
	return err
}

// firstPixelOffset turns 1-based FITS coordinates into a flat element offset.
func firstPixelOffset(axes, first []int) (int, error) {
	offset, stride := 0, 1
	for i, c := range first {
		if i >= len(axes) {
			if c != 1 {
				return 0, fmt.Errorf("coordinate %d on missing axis %d", c, i+1)
			}
			continue
		}
		if c < 1 || c > axes[i] {
			return 0, fmt.Errorf("coordinate %d outside axis %d (length %d)", c, i+1, axes[i])
		}
		offset += (c - 1) * stride
		stride *= axes[i]
	}
	return offset, nil
}
