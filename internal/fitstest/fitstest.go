// Package fitstest writes small FITS files for tests.
package fitstest

import(
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
)

// Encode builds a single-HDU FITS file. data must hold the element type that
// matches bitpix ([]uint8, []int16, []int32, []int64, []float32, []float64).
func Encode(bitpix int, axes []int, data interface{}, cards ...fitsio.Card) ([]byte, error) {
	buf := &bytes.Buffer{}

	f, err := fitsio.Create(buf)
	if err != nil {
		return nil, fmt.Errorf("fitsio create: %v", err)
	}

	im := fitsio.NewImage(bitpix, axes)
	defer im.Close()

	if len(cards) > 0 {
		if err := im.Header().Append(cards...); err != nil {
			return nil, fmt.Errorf("header append: %v", err)
		}
	}
	if err := im.Write(data); err != nil {
		return nil, fmt.Errorf("image write: %v", err)
	}
	if err := f.Write(im); err != nil {
		return nil, fmt.Errorf("hdu write: %v", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("fitsio close: %v", err)
	}

	return buf.Bytes(), nil
}

// Write stores a FITS file under t.TempDir() and returns its path.
func Write(t testing.TB, name string, bitpix int, axes []int, data interface{}, cards ...fitsio.Card) string {
	t.Helper()

	b, err := Encode(bitpix, axes, data, cards...)
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}

	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, b, 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
	return filename
}

// Uint16 stores unsigned 16-bit values the usual way: signed data, BZERO=32768.
func Uint16(t testing.TB, name string, axes []int, vals []uint16) string {
	t.Helper()

	ints := make([]int16, len(vals))
	for i, v := range vals {
		ints[i] = int16(int32(v) - 32768)
	}
	return Write(t, name, 16, axes, ints,
		fitsio.Card{Name: "BZERO", Value: 32768},
		fitsio.Card{Name: "BSCALE", Value: 1.0})
}

// Fill returns n copies of v.
func Fill[T any](n int, v T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}
