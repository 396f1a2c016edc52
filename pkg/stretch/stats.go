package stretch

import(
	"fmt"
	"math"
	"sort"

	"github.com/codahale/hdrhistogram"
	"gonum.org/v1/gonum/stat"

	"github.com/pmcg31/qtfits-poc/pkg/emath"
	"github.com/pmcg31/qtfits-poc/pkg/fits"
)

const(
	madToSigma   = 1.4826   // MAD of a normal distribution, in standard deviations
	histoScale   = 1000000  // normalized values are recorded as parts per million
	histoSigFigs = 3
)

// ChannelStats summarizes a sample of one channel's normalized values.
type ChannelStats struct {
	Samples    int
	Median     float64
	MAD        float64  // median absolute deviation from the median
	Mean       float64
	Min, Max   float64
	Highlight  float64  // value at the configured highlight percentile
}

// Sigma is the MAD scaled to a standard deviation, floored at minDispersion.
func (cs ChannelStats)Sigma(minDispersion float64) float64 {
	return math.Max(madToSigma * cs.MAD, minDispersion)
}

func (cs ChannelStats)String() string {
	return fmt.Sprintf("n=%d median=%.5f mad=%.5f mean=%.5f range=[%.5f,%.5f] highlight=%.5f",
		cs.Samples, cs.Median, cs.MAD, cs.Mean, cs.Min, cs.Max, cs.Highlight)
}

// sampleChannel picks at most maxSamples values of channel c, evenly strided
// across the image. The stride is coprime with the width, so successive rows
// start on different columns and a repeating pattern (a Bayer matrix, say)
// gets every column and row parity sampled. NaNs are skipped; everything
// else is clamped into [0,1].
func sampleChannel(img *fits.Image, c, maxSamples int) []float64 {
	d := img.Descriptor()
	r := img.Raster()

	n := d.Width * d.Height
	stride := 1
	if n > maxSamples {
		stride = (n + maxSamples - 1) / maxSamples
		for gcd(stride, d.Width) != 1 {
			stride++
		}
	}

	vals := make([]float64, 0, n/stride + 1)
	for p := 0; p < n; p += stride {
		v := r.Normalized(d.Index(p, c))
		if math.IsNaN(v) {
			continue
		}
		vals = append(vals, emath.Clamp01(v))
	}
	return vals
}

// computeStats sorts vals in place.
func computeStats(vals []float64, highlightPercentile float64) (ChannelStats, error) {
	cs := ChannelStats{Samples: len(vals)}
	if len(vals) == 0 {
		return cs, nil
	}

	sort.Float64s(vals)
	cs.Min, cs.Max = vals[0], vals[len(vals)-1]
	cs.Median = stat.Quantile(0.5, stat.Empirical, vals, nil)
	cs.Mean = stat.Mean(vals, nil)

	devs := make([]float64, len(vals))
	for i, v := range vals {
		devs[i] = math.Abs(v - cs.Median)
	}
	sort.Float64s(devs)
	cs.MAD = stat.Quantile(0.5, stat.Empirical, devs, nil)

	h := hdrhistogram.New(1, histoScale+1, histoSigFigs)
	for _, v := range vals {
		if err := h.RecordValue(int64(v*histoScale + 0.5) + 1); err != nil {
			return cs, fmt.Errorf("histogram record %f: %v", v, err)
		}
	}
	cs.Highlight = emath.Clamp01(float64(h.ValueAtQuantile(highlightPercentile) - 1) / histoScale)

	return cs, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
