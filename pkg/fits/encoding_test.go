package fits_test

import(
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmcg31/qtfits-poc/pkg/fits"
)

func TestEncodings(t *testing.T) {
	tests := []struct {
		bitpix  int
		label   string
		max     float64
		float   bool
	}{
		{8,   "8-bit byte pixels",            255,        false},
		{16,  "16 bit integer pixels",        65535,      false},
		{32,  "32-bit integer pixels",        4294967295, false},
		{-32, "32-bit floating point pixels", 1,          true},
		{-64, "64-bit floating point pixels", 1,          true},
	}

	seen := []fits.Encoding{}
	for _, tc := range tests {
		enc, ok := fits.FromBitpix(tc.bitpix)
		assert.True(t, ok, "bitpix %d", tc.bitpix)
		assert.Equal(t, tc.label, enc.Label())
		assert.Equal(t, tc.max, enc.NaturalMax())
		assert.Equal(t, tc.float, enc.IsFloat())
		seen = append(seen, enc)
	}
	assert.Equal(t, fits.Encodings, seen)

	for _, bitpix := range []int{0, 1, 12, 64, -16} {
		_, ok := fits.FromBitpix(bitpix)
		assert.False(t, ok, "bitpix %d", bitpix)
	}
}
