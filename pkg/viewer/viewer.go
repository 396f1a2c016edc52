// Package viewer holds what a window showing one FITS file needs to keep
// between repaints: the loaded image, the display mode, and the display
// buffer for that mode.
package viewer

import(
	"fmt"
	"log"

	"github.com/pmcg31/qtfits-poc/pkg/fits"
	"github.com/pmcg31/qtfits-poc/pkg/fitsfile"
	"github.com/pmcg31/qtfits-poc/pkg/stretch"
)

type Mode int

const(
	Linear Mode = iota
	Stretched
)

func (m Mode)String() string {
	switch m {
	case Linear:    return "linear"
	case Stretched: return "stretched"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode)Toggle() Mode {
	if m == Linear {
		return Stretched
	}
	return Linear
}

type Viewer struct {
	opener   fitsfile.Opener
	engine  *stretch.Engine

	filename  string
	img      *fits.Image
	mode      Mode

	params   *stretch.Parameters  // computed once per image
	display  *stretch.Display     // for mode; nil when stale
}

func New(c stretch.Config) *Viewer {
	return NewWithOpener(fitsfile.Default, c)
}

func NewWithOpener(opener fitsfile.Opener, c stretch.Config) *Viewer {
	return &Viewer{
		opener: opener,
		engine: stretch.NewEngine(c),
	}
}

func (v *Viewer)Image() *fits.Image { return v.img }
func (v *Viewer)Filename() string   { return v.filename }
func (v *Viewer)Mode() Mode         { return v.mode }

// SetFile loads filename, unless it is already the current file. If the load
// fails the error is returned and nothing changes: the previous image, its
// mode and its cached buffers all stay.
func (v *Viewer)SetFile(filename string) error {
	if v.img != nil && filename == v.filename {
		return nil
	}

	img, err := fits.LoadWith(v.opener, filename)
	if err != nil {
		log.Printf("viewer: load failed: %v\n", err)
		return err
	}

	log.Printf("viewer: loaded %s: %s\n", filename, img.TypeLabel())
	log.Printf("viewer: loaded %s: %s\n", filename, img.SizeAndColorLabel())

	v.filename = filename
	v.img = img
	v.params = nil
	v.display = nil
	return nil
}

// SetStretched picks the mode. Changing it drops the display buffer; the
// raster itself is not re-read.
func (v *Viewer)SetStretched(on bool) {
	want := Linear
	if on {
		want = Stretched
	}
	if want == v.mode {
		return
	}
	v.mode = want
	v.display = nil
}

func (v *Viewer)Toggle() {
	v.SetStretched(v.mode.Toggle() == Stretched)
}

// Display returns the buffer for the current mode, regenerating it if the
// mode or image changed since the last call. It is nil with no image.
func (v *Viewer)Display() *stretch.Display {
	if v.img == nil {
		return nil
	}
	if v.display != nil {
		return v.display
	}

	switch v.mode {
	case Stretched:
		if v.params == nil {
			p := v.engine.ComputeParameters(v.img)
			v.params = &p
		}
		v.display = v.engine.Run(v.img, v.params)
	default:
		v.display = v.engine.Run(v.img, nil)
	}

	return v.display
}

// Parameters are the stretch parameters in use, or nil if nothing has been
// stretched yet.
func (v *Viewer)Parameters() *stretch.Parameters { return v.params }
