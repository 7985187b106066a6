package attr

import (
	"fmt"
	"strings"
)

// Phase indicates which pipeline produced an error.
type Phase string

const (
	PhaseEncode   Phase = "encode"   // host to interchange
	PhaseDecode   Phase = "decode"   // interchange to host
	PhaseValidate Phase = "validate" // topology validation
)

// ErrorKind categorizes a rejection.
type ErrorKind string

const (
	KindInvalidDomain        ErrorKind = "invalid_domain"
	KindTopologyMismatch     ErrorKind = "topology_mismatch"
	KindIndexOutOfRange      ErrorKind = "index_out_of_range"
	KindUnsupportedDimension ErrorKind = "unsupported_dimension"
	KindUncastableValues     ErrorKind = "uncastable_values"
	KindInvalidName          ErrorKind = "invalid_name"
	KindEmptyValues          ErrorKind = "empty_values"
)

// Error describes why a single attribute could not be translated.
// Callers skip the attribute and continue with the rest of the mesh.
type Error struct {
	Phase     Phase
	Kind      ErrorKind
	Attribute string
	Detail    string
	Cause     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Attribute != "" {
		b.WriteString(" at ")
		b.WriteString(e.Attribute)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Kind, and on Phase when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidDomain        = &Error{Kind: KindInvalidDomain}
	ErrTopologyMismatch     = &Error{Kind: KindTopologyMismatch}
	ErrIndexOutOfRange      = &Error{Kind: KindIndexOutOfRange}
	ErrUnsupportedDimension = &Error{Kind: KindUnsupportedDimension}
	ErrUncastableValues     = &Error{Kind: KindUncastableValues}
	ErrInvalidName          = &Error{Kind: KindInvalidName}
	ErrEmptyValues          = &Error{Kind: KindEmptyValues}
)

// Errorf builds an Error with a formatted detail message.
func Errorf(phase Phase, kind ErrorKind, attribute, format string, args ...any) *Error {
	return &Error{
		Phase:     phase,
		Kind:      kind,
		Attribute: attribute,
		Detail:    fmt.Sprintf(format, args...),
	}
}

// UnsupportedDimension reports a kind whose component count is not 1..4.
func UnsupportedDimension(phase Phase, attribute string, kind Kind) *Error {
	return Errorf(phase, KindUnsupportedDimension, attribute,
		"kind %s has %d components (supported 1-4)", kind, ComponentDimension(kind))
}

// OutOfRange reports an index entry outside [0, length).
func OutOfRange(phase Phase, attribute string, position, index, length int) *Error {
	return Errorf(phase, KindIndexOutOfRange, attribute,
		"index[%d] = %d out of range (values %d)", position, index, length)
}
