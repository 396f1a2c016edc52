package stretch

import(
	"fmt"
	"strings"

	"github.com/pmcg31/qtfits-poc/pkg/emath"
)

// ChannelParameters are normalized to [0,1]. Values below Black display as
// 0, values above White as full scale, and in between the midtone curve
// with balance Midtone is applied.
type ChannelParameters struct {
	Black    float64
	White    float64
	Midtone  float64
}

// Identity is the linear stretch: no clipping, straight curve.
var Identity = ChannelParameters{Black: 0, White: 1, Midtone: 0.5}

func (cp ChannelParameters)String() string {
	return fmt.Sprintf("{black:%.5f white:%.5f midtone:%.5f}", cp.Black, cp.White, cp.Midtone)
}

// Transform maps one normalized value to [0,1]. NaN displays as black.
func (cp ChannelParameters)Transform(v float64) float64 {
	v = emath.Clamp01(v)

	if cp.White <= cp.Black {
		if v >= cp.White {
			return 1
		}
		return 0
	}

	switch {
	case v <= cp.Black: return 0
	case v >= cp.White: return 1
	}
	return MTF(cp.Midtone, (v - cp.Black) / (cp.White - cp.Black))
}

// Parameters hold one entry per channel of the source image, in storage
// order.
type Parameters struct {
	Channels []ChannelParameters
}

// LinearParameters is the identity stretch for n channels.
func LinearParameters(n int) Parameters {
	p := Parameters{Channels: make([]ChannelParameters, n)}
	for i := range p.Channels {
		p.Channels[i] = Identity
	}
	return p
}

// For returns the parameters of channel c. Mono parameters apply to every
// channel; missing ones are the identity.
func (p Parameters)For(c int) ChannelParameters {
	switch {
	case c < len(p.Channels): return p.Channels[c]
	case len(p.Channels) == 1: return p.Channels[0]
	}
	return Identity
}

func (p Parameters)String() string {
	strs := []string{}
	for _, cp := range p.Channels {
		strs = append(strs, cp.String())
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

// parametersFromStats anchors the background: black is ShadowClip sigmas
// below the median, white is the highlight (or 1 if that is no brighter than
// the background), and the midtone puts the median at TargetBackground.
func (c Config)parametersFromStats(cs ChannelStats) ChannelParameters {
	if cs.Samples == 0 {
		return Identity
	}

	black := emath.Clamp01(cs.Median + c.ShadowClip * cs.Sigma(c.MinDispersion))
	white := cs.Highlight
	if white <= cs.Median || white <= black {
		white = 1
	}
	if black >= white {
		black = emath.Clamp01(white - c.MinDispersion)
	}

	x := (cs.Median - black) / (white - black)
	return ChannelParameters{
		Black:   black,
		White:   white,
		Midtone: MidtonesBalance(x, c.TargetBackground),
	}
}

// linkedStats averages the background estimates across channels, and takes
// the brightest highlight, so one set of parameters preserves color balance.
func linkedStats(all []ChannelStats) ChannelStats {
	out := ChannelStats{}
	n := 0
	for _, cs := range all {
		if cs.Samples == 0 {
			continue
		}
		n++
		out.Samples += cs.Samples
		out.Median += cs.Median
		out.MAD += cs.MAD
		out.Mean += cs.Mean
		if n == 1 || cs.Min < out.Min { out.Min = cs.Min }
		if cs.Max > out.Max { out.Max = cs.Max }
		if cs.Highlight > out.Highlight { out.Highlight = cs.Highlight }
	}
	if n > 0 {
		out.Median /= float64(n)
		out.MAD /= float64(n)
		out.Mean /= float64(n)
	}
	return out
}
