package fits

import(
	"log"

	"github.com/pmcg31/qtfits-poc/pkg/fitsfile"
)

// Load reads a FITS file from the local filesystem.
func Load(filename string) (*Image, error) {
	return LoadWith(fitsfile.Default, filename)
}

// LoadWith runs the whole decode through the given Format Reader: open,
// validate the geometry and pixel type, then one bulk read of every pixel.
// On any failure nothing is returned but the error, and the handle is closed.
func LoadWith(opener fitsfile.Opener, filename string) (*Image, error) {
	img, err := load(opener, filename)
	if err != nil {
		if le, ok := err.(*LoadError); ok && le.Filename == "" {
			le.Filename = filename
		}
		return nil, err
	}
	return img, nil
}

func load(opener fitsfile.Opener, filename string) (*Image, error) {
	h, err := opener.Open(filename)
	if err != nil {
		return nil, fromReader("open", err)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			log.Printf("fits: close '%s': %v\n", filename, cerr)
		}
	}()

	desc, err := NewDescriptor(h)
	if err != nil {
		return nil, err
	}

	raster, err := readRaster(h, desc)
	if err != nil {
		return nil, err
	}

	return &Image{filename: filename, desc: desc, raster: raster}, nil
}
