package fits

import(
	"errors"
	"fmt"

	"github.com/pmcg31/qtfits-poc/pkg/fitsfile"
)

// ErrorKind says why a load failed. Every kind is terminal for that load.
type ErrorKind int

const(
	FormatRead ErrorKind = iota + 1  // the Format Reader reported a status
	UnsupportedGeometry              // axis count outside [2,3], or an empty axis
	AmbiguousColorAxis               // 3 axes, but not exactly one usable length-3 axis
	UnsupportedEncoding              // BITPIX is not one of the five encodings
)

func (k ErrorKind)String() string {
	switch k {
	case FormatRead:          return "FormatReadError"
	case UnsupportedGeometry: return "UnsupportedGeometry"
	case AmbiguousColorAxis:  return "AmbiguousColorAxis"
	case UnsupportedEncoding: return "UnsupportedEncoding"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// A LoadError is the single error a failed load returns.
type LoadError struct {
	Kind      ErrorKind
	Filename  string
	Status    fitsfile.Status  // FormatRead only
	Msg       string
	Err       error
}

// Sentinels for errors.Is; they match any LoadError of the same kind.
var(
	ErrFormatRead          = &LoadError{Kind: FormatRead}
	ErrUnsupportedGeometry = &LoadError{Kind: UnsupportedGeometry}
	ErrAmbiguousColorAxis  = &LoadError{Kind: AmbiguousColorAxis}
	ErrUnsupportedEncoding = &LoadError{Kind: UnsupportedEncoding}
)

func (e *LoadError)Error() string {
	str := e.Kind.String()
	if e.Filename != "" {
		str += " '" + e.Filename + "'"
	}
	if e.Msg != "" {
		str += ": " + e.Msg
	}
	if e.Err != nil {
		str += ": " + e.Err.Error()
	}
	return str
}

func (e *LoadError)Unwrap() error { return e.Err }

func (e *LoadError)Is(target error) bool {
	t, ok := target.(*LoadError)
	return ok && t.Kind == e.Kind
}

func newLoadError(kind ErrorKind, msg string) *LoadError {
	return &LoadError{Kind: kind, Msg: msg}
}

// fromReader turns a Format Reader failure into a FormatRead LoadError,
// keeping its status and text.
func fromReader(op string, err error) *LoadError {
	le := &LoadError{Kind: FormatRead, Status: fitsfile.StatusReadError, Msg: op, Err: err}

	var ferr *fitsfile.Error
	if errors.As(err, &ferr) {
		le.Status = ferr.Status
	}
	return le
}
