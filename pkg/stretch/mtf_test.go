package stretch_test

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmcg31/qtfits-poc/pkg/stretch"
)

func TestMTF(t *testing.T) {
	for _, m := range []float64{0.01, 0.1, 0.25, 0.5, 0.75, 0.99} {
		assert.Equal(t, 0.0, stretch.MTF(m, 0), "m=%f", m)
		assert.Equal(t, 1.0, stretch.MTF(m, 1), "m=%f", m)
		assert.InDelta(t, 0.5, stretch.MTF(m, m), 1e-12, "m=%f", m)
		assert.InDelta(t, 1-m, stretch.MTF(m, 0.5), 1e-12, "m=%f", m)
	}

	for _, x := range []float64{0, 0.001, 0.3, 0.5, 0.999, 1} {
		assert.InDelta(t, x, stretch.MTF(0.5, x), 1e-15)
	}
}

func TestMTFMonotonic(t *testing.T) {
	for _, m := range []float64{0.001, 0.05, 0.5, 0.95} {
		prev := -1.0
		for i := 0; i <= 10000; i++ {
			y := stretch.MTF(m, float64(i)/10000.0)
			assert.GreaterOrEqual(t, y, prev, "m=%f i=%d", m, i)
			prev = y
		}
	}
}

func TestMidtonesBalance(t *testing.T) {
	tests := []struct {
		x, y float64
	}{
		{0.003, 0.25},
		{0.1, 0.25},
		{0.5, 0.5},
		{0.7, 0.2},
	}

	for _, tc := range tests {
		m := stretch.MidtonesBalance(tc.x, tc.y)
		assert.True(t, m > 0 && m < 1, "m=%f", m)
		assert.InDelta(t, tc.y, stretch.MTF(m, tc.x), 1e-9)
	}

	assert.Equal(t, 0.5, stretch.MidtonesBalance(0, 0.25))
	assert.Equal(t, 0.5, stretch.MidtonesBalance(1, 0.25))
}

func TestTransform(t *testing.T) {
	cp := stretch.ChannelParameters{Black: 0.2, White: 0.8, Midtone: 0.3}

	assert.Equal(t, 0.0, cp.Transform(0.1))
	assert.Equal(t, 0.0, cp.Transform(0.2))
	assert.Equal(t, 1.0, cp.Transform(0.8))
	assert.Equal(t, 1.0, cp.Transform(5))
	assert.Equal(t, 0.0, cp.Transform(math.NaN()))
	assert.InDelta(t, 0.5, cp.Transform(0.2 + 0.3*0.6), 1e-12)

	flat := stretch.ChannelParameters{Black: 0.5, White: 0.5, Midtone: 0.5}
	assert.Equal(t, 0.0, flat.Transform(0.4))
	assert.Equal(t, 1.0, flat.Transform(0.5))
}
