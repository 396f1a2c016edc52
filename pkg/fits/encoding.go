package fits

import(
	"fmt"
	"math"
)

// An Encoding is the numeric type of the stored pixels.
type Encoding int

const(
	Int8 Encoding = iota
	Int16
	Int32
	Float32
	Float64
)

var(
	Encodings = []Encoding{Int8, Int16, Int32, Float32, Float64}

	encodingNames = map[Encoding]string{
		Int8:    "int8",
		Int16:   "int16",
		Int32:   "int32",
		Float32: "float32",
		Float64: "float64",
	}

	encodingLabels = map[Encoding]string{
		Int8:    "8-bit byte pixels",
		Int16:   "16 bit integer pixels",
		Int32:   "32-bit integer pixels",
		Float32: "32-bit floating point pixels",
		Float64: "64-bit floating point pixels",
	}
)

func (e Encoding)String() string {
	if s, exists := encodingNames[e]; exists {
		return s
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// Label is the human readable description, for diagnostics only.
func (e Encoding)Label() string { return encodingLabels[e] }

// NaturalMax is the value that normalizes to 1.0. Integers are read as
// unsigned, so it is the top of the unsigned range; floats are assumed to
// already be in [0,1].
func (e Encoding)NaturalMax() float64 {
	switch e {
	case Int8:  return math.MaxUint8
	case Int16: return math.MaxUint16
	case Int32: return math.MaxUint32
	}
	return 1.0
}

// IsFloat is true for the floating point encodings.
func (e Encoding)IsFloat() bool { return e == Float32 || e == Float64 }

// FromBitpix maps a FITS BITPIX tag onto an Encoding.
func FromBitpix(bitpix int) (Encoding, bool) {
	switch bitpix {
	case 8:   return Int8, true
	case 16:  return Int16, true
	case 32:  return Int32, true
	case -32: return Float32, true
	case -64: return Float64, true
	}
	return 0, false
}
