package fitsfile

import(
	"encoding/binary"
	"fmt"
	"math"

	"github.com/astrogo/fitsio"
)

// scaling holds the linear transform from stored to physical values.
type scaling struct {
	Scale float64  // BSCALE
	Zero  float64  // BZERO
}

func (s scaling)apply(v float64) float64 { return v*s.Scale + s.Zero }

func scalingFromHeader(hdr *fitsio.Header) scaling {
	s := scaling{Scale: 1.0, Zero: 0.0}
	if v, ok := cardFloat(hdr, "BSCALE"); ok {
		s.Scale = v
	}
	if v, ok := cardFloat(hdr, "BZERO"); ok {
		s.Zero = v
	}
	return s
}

func cardFloat(hdr *fitsio.Header, name string) (float64, bool) {
	card := hdr.Get(name)
	if card == nil {
		return 0, false
	}
	switch v := card.Value.(type) {
	case int:     return float64(v), true
	case int64:   return float64(v), true
	case float64: return v, true
	case float32: return float64(v), true
	}
	return 0, false
}

// bytesPerElement maps a BITPIX tag to the stored width.
func bytesPerElement(bitpix int) (int, error) {
	switch bitpix {
	case 8:        return 1, nil
	case 16:       return 2, nil
	case 32, -32:  return 4, nil
	case 64, -64:  return 8, nil
	}
	return 0, fmt.Errorf("BITPIX %d", bitpix)
}

// storedAt decodes the big-endian element i of raw as a float64.
func storedAt(raw []byte, bitpix, i int) float64 {
	switch bitpix {
	case 8:   return float64(raw[i])
	case 16:  return float64(int16(binary.BigEndian.Uint16(raw[2*i:])))
	case 32:  return float64(int32(binary.BigEndian.Uint32(raw[4*i:])))
	case 64:  return float64(int64(binary.BigEndian.Uint64(raw[8*i:])))
	case -32: return float64(math.Float32frombits(binary.BigEndian.Uint32(raw[4*i:])))
	case -64: return math.Float64frombits(binary.BigEndian.Uint64(raw[8*i:]))
	}
	return math.NaN()
}

// decodeInto converts len(dst) stored elements, beginning at element offset,
// into dst. Integer destinations are rounded and clamped; NaN lands on zero.
func decodeInto(raw []byte, bitpix, offset int, s scaling, dst interface{}) error {
	width, err := bytesPerElement(bitpix)
	if err != nil {
		return newError("read pixels", StatusBadDataType, err)
	}

	n, err := destLen(dst)
	if err != nil {
		return newError("read pixels", StatusBadDataType, err)
	}
	if (offset+n)*width > len(raw) {
		return newError("read pixels", StatusReadError,
			fmt.Errorf("want %d elements from offset %d, file holds %d", n, offset, len(raw)/width))
	}

	phys := func(i int) float64 { return s.apply(storedAt(raw, bitpix, offset+i)) }

	switch d := dst.(type) {
	case []uint8:
		for i := range d { d[i] = uint8(clampRound(phys(i), math.MaxUint8)) }
	case []uint16:
		for i := range d { d[i] = uint16(clampRound(phys(i), math.MaxUint16)) }
	case []uint32:
		for i := range d { d[i] = uint32(clampRound(phys(i), math.MaxUint32)) }
	case []float32:
		for i := range d { d[i] = float32(phys(i)) }
	case []float64:
		for i := range d { d[i] = phys(i) }
	}

	return nil
}

func destLen(dst interface{}) (int, error) {
	switch d := dst.(type) {
	case []uint8:   return len(d), nil
	case []uint16:  return len(d), nil
	case []uint32:  return len(d), nil
	case []float32: return len(d), nil
	case []float64: return len(d), nil
	}
	return 0, fmt.Errorf("unsupported destination %T", dst)
}

func clampRound(v, max float64) float64 {
	switch {
	case math.IsNaN(v): return 0
	case v <= 0:        return 0
	case v >= max:      return max
	}
	return math.Round(v)
}
