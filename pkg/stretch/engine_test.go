package stretch_test

import(
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmcg31/qtfits-poc/internal/fitstest"
	"github.com/pmcg31/qtfits-poc/pkg/fits"
	"github.com/pmcg31/qtfits-poc/pkg/stretch"
)

func load(t *testing.T, filename string) *fits.Image {
	t.Helper()
	img, err := fits.Load(filename)
	require.NoError(t, err)
	return img
}

// bimodal is a 100x50 16-bit sky at 1000 with every tenth pixel a star at 60000.
func bimodal(t *testing.T) *fits.Image {
	vals := fitstest.Fill[uint16](5000, 1000)
	for i := 0; i < len(vals); i += 10 {
		vals[i] = 60000
	}
	return load(t, fitstest.Uint16(t, "bimodal.fits", []int{100, 50}, vals))
}

// rgb writes the same logical 10x10 color image with the channel axis last
// or first.
func rgb(t *testing.T, channelAxis int) *fits.Image {
	const w, h = 10, 10
	value := func(x, y, c int) uint8 { return uint8(10 + x*3 + y*11 + c*40) }

	buf := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := y*w + x
			for c := 0; c < 3; c++ {
				if channelAxis == fits.ChannelLast {
					buf[c*w*h+p] = value(x, y, c)
				} else {
					buf[3*p+c] = value(x, y, c)
				}
			}
		}
	}

	if channelAxis == fits.ChannelLast {
		return load(t, fitstest.Write(t, "last.fits", 8, []int{w, h, 3}, buf))
	}
	return load(t, fitstest.Write(t, "first.fits", 8, []int{3, w, h}, buf))
}

func TestLinearMidGray(t *testing.T) {
	img := load(t, fitstest.Uint16(t, "mid.fits", []int{100, 50}, fitstest.Fill[uint16](5000, 32768)))

	e := stretch.NewEngine(stretch.DefaultConfig())
	disp := e.Run(img, nil)

	require.Len(t, disp.Pix, 5000)
	assert.Equal(t, 1, disp.Channels)
	for _, b := range disp.Pix {
		require.Equal(t, uint8(128), b)
	}
}

func TestLinearEncodings(t *testing.T) {
	e := stretch.NewEngine(stretch.DefaultConfig())

	tests := []struct {
		name      string
		filename  string
		want      uint8
	}{
		{"int8",    fitstest.Write(t, "u8.fits", 8, []int{4, 4}, fitstest.Fill[uint8](16, 255)), 255},
		{"float32", fitstest.Write(t, "f32.fits", -32, []int{4, 4}, fitstest.Fill[float32](16, 0.5)), 128},
		{"float64", fitstest.Write(t, "f64.fits", -64, []int{4, 4}, fitstest.Fill[float64](16, 2.0)), 255},
		{"nan",     fitstest.Write(t, "nan.fits", -64, []int{4, 4}, fitstest.Fill[float64](16, math.NaN())), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			disp := e.Linear(load(t, tc.filename))
			assert.Equal(t, tc.want, disp.Pix[0])
			assert.Equal(t, tc.want, disp.Pix[15])
		})
	}
}

func TestStretchBimodal(t *testing.T) {
	img := bimodal(t)
	e := stretch.NewEngine(stretch.DefaultConfig())

	p := e.ComputeParameters(img)
	require.Len(t, p.Channels, 1)
	cp := p.Channels[0]

	background := 1000.0 / 65535.0
	star := 60000.0 / 65535.0

	assert.LessOrEqual(t, cp.Black, background)
	assert.InDelta(t, background, cp.Black, 0.01)
	assert.Greater(t, cp.White, background)
	assert.InDelta(t, star, cp.White, 0.01)
	assert.True(t, cp.Midtone > 0 && cp.Midtone < 0.5)

	disp := e.ApplyTransform(img, p)
	sky := disp.Pix[1]
	assert.Greater(t, sky, uint8(0))
	assert.Less(t, sky, uint8(128))
	assert.InDelta(t, 0.25*255, float64(sky), 2)
	assert.GreaterOrEqual(t, disp.Pix[0], uint8(250))
}

func TestStretchStats(t *testing.T) {
	img := bimodal(t)
	e := stretch.NewEngine(stretch.DefaultConfig())

	all, err := e.Stats(img)
	require.NoError(t, err)
	require.Len(t, all, 1)

	cs := all[0]
	assert.Equal(t, 5000, cs.Samples)
	assert.InDelta(t, 1000.0/65535.0, cs.Median, 1e-12)
	assert.Equal(t, 0.0, cs.MAD)
	assert.InDelta(t, 0.9*1000.0/65535.0 + 0.1*60000.0/65535.0, cs.Mean, 1e-9)
	assert.InDelta(t, 60000.0/65535.0, cs.Max, 1e-12)
}

func TestStretchSamplingIsBounded(t *testing.T) {
	img := bimodal(t)
	c := stretch.DefaultConfig()
	c.MaxSamples = 100
	e := stretch.NewEngine(c)

	all, err := e.Stats(img)
	require.NoError(t, err)
	assert.LessOrEqual(t, all[0].Samples, 100)
	assert.Greater(t, all[0].Samples, 50)
	assert.InDelta(t, 1000.0/65535.0, all[0].Median, 1e-12)
	assert.Less(t, all[0].Mean, 0.5)
}

// A mono frame straight off a color sensor: a 2x2 RGGB pattern.
func TestStretchSamplingBayerPattern(t *testing.T) {
	const w, h = 1000, 1000
	vals := make([]uint16, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case y%2 == 0 && x%2 == 0: vals[y*w+x] = 1000
			case y%2 == 1 && x%2 == 1: vals[y*w+x] = 5000
			default:                   vals[y*w+x] = 3000
			}
		}
	}
	img := load(t, fitstest.Uint16(t, "bayer.fits", []int{w, h}, vals))

	full := stretch.DefaultConfig()
	full.MaxSamples = w * h
	want, err := stretch.NewEngine(full).Stats(img)
	require.NoError(t, err)

	got, err := stretch.NewEngine(stretch.DefaultConfig()).Stats(img)
	require.NoError(t, err)

	assert.LessOrEqual(t, got[0].Samples, stretch.DefaultConfig().MaxSamples)
	assert.InDelta(t, 3000.0/65535.0, want[0].Median, 1e-12)
	assert.Equal(t, want[0].Median, got[0].Median)
	assert.InDelta(t, want[0].Mean, got[0].Mean, 20.0/65535.0)
}

func TestTransformIsMonotonic(t *testing.T) {
	vals := make([]uint16, 256*4)
	for i := range vals {
		vals[i] = uint16(i * 64)
	}
	img := load(t, fitstest.Uint16(t, "ramp.fits", []int{256, 4}, vals))

	e := stretch.NewEngine(stretch.DefaultConfig())
	params := []stretch.Parameters{
		stretch.LinearParameters(1),
		e.ComputeParameters(img),
		{Channels: []stretch.ChannelParameters{{Black: 0.1, White: 0.6, Midtone: 0.02}}},
		{Channels: []stretch.ChannelParameters{{Black: 0.3, White: 0.3, Midtone: 0.5}}},
	}

	for _, p := range params {
		disp := e.ApplyTransform(img, p)
		for i := 1; i < len(disp.Pix); i++ {
			require.GreaterOrEqual(t, disp.Pix[i], disp.Pix[i-1], "%s at %d", p, i)
		}
	}
}

func TestColorLayoutsDisplayTheSame(t *testing.T) {
	last := rgb(t, fits.ChannelLast)
	first := rgb(t, fits.ChannelFirst)

	for _, linked := range []bool{false, true} {
		c := stretch.DefaultConfig()
		c.Linked = linked
		e := stretch.NewEngine(c)

		pLast := e.ComputeParameters(last)
		pFirst := e.ComputeParameters(first)
		require.Len(t, pLast.Channels, 3)
		assert.Equal(t, pLast, pFirst)

		assert.Equal(t, e.Linear(last).Pix, e.Linear(first).Pix)
		assert.Equal(t, e.ApplyTransform(last, pLast).Pix, e.ApplyTransform(first, pFirst).Pix)

		if linked {
			assert.Equal(t, pLast.Channels[0], pLast.Channels[2])
		}
	}

	disp := stretch.NewEngine(stretch.DefaultConfig()).Linear(last)
	assert.Equal(t, 3, disp.Channels)
	assert.Equal(t, color.RGBA{10, 50, 90, 0xFF}, disp.At(0, 0))
}

func TestBGR(t *testing.T) {
	img := rgb(t, fits.ChannelLast)

	c := stretch.DefaultConfig()
	c.BGR = true
	disp := stretch.NewEngine(c).Linear(img)

	r, g, b := disp.RGB(0, 0)
	assert.Equal(t, []uint8{90, 50, 10}, []uint8{r, g, b})
}

func TestRunIsRepeatable(t *testing.T) {
	img := bimodal(t)
	pix, ok := fits.PixelsOf[uint16](img.Raster())
	require.True(t, ok)
	before := append([]uint16(nil), pix.Values()...)

	e := stretch.NewEngine(stretch.DefaultConfig())

	assert.Equal(t, e.Run(img, nil).Pix, e.Run(img, nil).Pix)

	p1 := e.ComputeParameters(img)
	p2 := e.ComputeParameters(img)
	assert.Equal(t, p1, p2)
	assert.Equal(t, e.Run(img, &p1).Pix, e.Run(img, &p2).Pix)

	assert.Equal(t, before, pix.Values())
}

func TestAllNaNIsLinear(t *testing.T) {
	img := load(t, fitstest.Write(t, "nan.fits", -32, []int{3, 3}, fitstest.Fill[float32](9, float32(math.NaN()))))
	p := stretch.NewEngine(stretch.DefaultConfig()).ComputeParameters(img)
	assert.Equal(t, stretch.LinearParameters(1), p)
}

func TestDisplayImage(t *testing.T) {
	img := load(t, fitstest.Uint16(t, "mid.fits", []int{4, 2}, fitstest.Fill[uint16](8, 32768)))
	disp := stretch.NewEngine(stretch.DefaultConfig()).Linear(img)

	assert.Equal(t, color.GrayModel, disp.ColorModel())
	assert.Equal(t, 4, disp.Bounds().Dx())
	assert.Equal(t, 2, disp.Bounds().Dy())
	assert.Equal(t, color.Gray{128}, disp.At(3, 1))
	assert.Equal(t, color.RGBA{}, disp.At(4, 1))

	mean := disp.MeanColor()
	assert.InDelta(t, 128.0/255.0, mean.R, 1e-6)
	assert.InDelta(t, mean.R, mean.B, 1e-12)
}

func TestConfig(t *testing.T) {
	c := stretch.DefaultConfig()
	require.NoError(t, c.Finalize())
	assert.Contains(t, c.AsYaml(), "targetbackground: 0.25")

	filename := filepath.Join(t.TempDir(), "stretch.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("targetbackground: 0.15\nlinked: true\nbgr: true\n"), 0644))

	c, err := stretch.LoadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, 0.15, c.TargetBackground)
	assert.True(t, c.Linked)
	assert.True(t, c.BGR)
	assert.Equal(t, -2.8, c.ShadowClip)

	bad := []func(*stretch.Config){
		func(c *stretch.Config) { c.TargetBackground = 1 },
		func(c *stretch.Config) { c.ShadowClip = 1 },
		func(c *stretch.Config) { c.HighlightPercentile = 0 },
		func(c *stretch.Config) { c.MaxSamples = 0 },
		func(c *stretch.Config) { c.MinDispersion = 0 },
	}
	for i, f := range bad {
		c := stretch.DefaultConfig()
		f(&c)
		assert.Error(t, c.Finalize(), "case %d", i)
	}

	_, err = stretch.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
