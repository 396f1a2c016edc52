// Package stretch turns a decoded FITS image into an 8-bit display buffer,
// either linearly or with a statistics driven midtones stretch that anchors
// the sky background at a fixed target brightness.
package stretch

import(
	"log"
	"math"

	"github.com/pmcg31/qtfits-poc/pkg/fits"
)

type Engine struct {
	Config Config
}

func NewEngine(c Config) *Engine {
	return &Engine{Config: c}
}

// Stats samples every channel of img, in storage order.
func (e *Engine)Stats(img *fits.Image) ([]ChannelStats, error) {
	all := []ChannelStats{}
	for c := 0; c < img.Channels(); c++ {
		cs, err := computeStats(sampleChannel(img, c, e.Config.MaxSamples), e.Config.HighlightPercentile)
		if err != nil {
			return nil, err
		}
		all = append(all, cs)
	}
	return all, nil
}

// ComputeParameters derives stretch parameters from a sample of img. It only
// reads the raster. If the statistics can't be computed, the result is the
// linear stretch.
func (e *Engine)ComputeParameters(img *fits.Image) Parameters {
	all, err := e.Stats(img)
	if err != nil {
		log.Printf("stretch: %s: %v, falling back to linear\n", img.Filename(), err)
		return LinearParameters(img.Channels())
	}

	if e.Config.Linked && len(all) > 1 {
		cs := linkedStats(all)
		for i := range all {
			all[i] = cs
		}
	}

	p := Parameters{}
	for c, cs := range all {
		cp := e.Config.parametersFromStats(cs)
		if e.Config.Verbosity > 0 {
			log.Printf("stretch: channel %d: %s -> %s\n", c, cs, cp)
		}
		p.Channels = append(p.Channels, cp)
	}
	return p
}

// ApplyTransform stretches every sample of img through p. The output is
// interleaved RGB (or gray) whatever the channel axis of the source.
func (e *Engine)ApplyTransform(img *fits.Image, p Parameters) *Display {
	d := img.Descriptor()
	r := img.Raster()
	n := d.Width * d.Height
	nc := d.Channels()

	disp := newDisplay(d.Width, d.Height, nc)

	for dc := 0; dc < nc; dc++ {
		sc := e.sourceChannel(dc, nc)
		cp := p.For(sc)
		for pix := 0; pix < n; pix++ {
			v := cp.Transform(r.Normalized(d.Index(pix, sc)))
			disp.Pix[pix*nc + dc] = toByte(v)
		}
	}

	return disp
}

// Linear rescales each encoding's natural range straight onto the display
// range, without looking at the data.
func (e *Engine)Linear(img *fits.Image) *Display {
	return e.ApplyTransform(img, LinearParameters(img.Channels()))
}

// Run is Linear when p is nil.
func (e *Engine)Run(img *fits.Image, p *Parameters) *Display {
	if p == nil {
		return e.Linear(img)
	}
	return e.ApplyTransform(img, *p)
}

// sourceChannel picks the stored channel that feeds display channel dc.
func (e *Engine)sourceChannel(dc, nc int) int {
	if e.Config.BGR && nc == 3 {
		return 2 - dc
	}
	return dc
}

func toByte(v float64) uint8 {
	return uint8(math.Floor(v*255.0 + 0.5))
}
