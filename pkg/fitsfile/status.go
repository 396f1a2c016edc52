package fitsfile

import(
	"fmt"
)

// A Status is the numeric outcome of a primitive read. Zero means success; the
// values follow the cfitsio numbering, so they read the same in log output.
type Status int

const(
	StatusOK              Status = 0
	StatusFileNotOpened   Status = 104
	StatusEndOfFile       Status = 107
	StatusReadError       Status = 108
	StatusNotFITS         Status = 252
	StatusNoImage         Status = 233
	StatusBadFirstPixel   Status = 321
	StatusBadDataType     Status = 410
)

var statusText = map[Status]string{
	StatusOK:              "OK - no error",
	StatusFileNotOpened:   "could not open the named file",
	StatusEndOfFile:       "tried to move past end of file",
	StatusReadError:       "error reading from FITS file",
	StatusNotFITS:         "1st key not SIMPLE or XTENSION",
	StatusNoImage:         "primary HDU does not contain an image",
	StatusBadFirstPixel:   "first pixel number greater than last pixel",
	StatusBadDataType:     "bad keyword datatype code",
}

// ErrorMessage returns the text for a status, like fits_get_errstatus.
func ErrorMessage(s Status) string {
	if txt, exists := statusText[s]; exists {
		return txt
	}
	return fmt.Sprintf("unknown error status %d", int(s))
}

// Error is returned by every Handle and Opener operation that fails.
type Error struct {
	Op      string   // which primitive failed, e.g. "open", "read pixels"
	Status  Status
	Err     error    // underlying cause, may be nil
}

func (e *Error)Error() string {
	str := fmt.Sprintf("fitsfile %s: status %d (%s)", e.Op, int(e.Status), ErrorMessage(e.Status))
	if e.Err != nil {
		str += ": " + e.Err.Error()
	}
	return str
}

func (e *Error)Unwrap() error { return e.Err }

func newError(op string, s Status, err error) *Error {
	return &Error{Op: op, Status: s, Err: err}
}
