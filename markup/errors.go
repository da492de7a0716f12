package markup

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by Error.
var (
	ErrInvalidHandler  = errors.New("value does not handle events")
	ErrNilTarget       = errors.New("nil render target")
	ErrMarkerNotFound  = errors.New("template marker not found")
	ErrElementNotFound = errors.New("bound element not found")
	ErrValueCount      = errors.New("value count does not match segments")
)

// ErrorKind identifies the category of an Error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a missing render target or similar misuse.
	KindConfig
	// KindDirective indicates a malformed directive value.
	KindDirective
	// KindBinding indicates a binding whose element could not be found.
	KindBinding
	// KindMarker indicates rendered content without a structural marker.
	KindMarker
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindDirective:
		return "directive"
	case KindBinding:
		return "binding"
	case KindMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Error describes a compile or render failure. These are reported, never
// returned: compilation and rendering degrade instead of failing.
type Error struct {
	// Op is "compile" or "render".
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Subject names the directive, selector or template involved.
	Subject string
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s [%s] %s: %v", e.Op, e.Kind, e.Subject, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind == kind
	}
	return false
}
