package urban

import (
	"errors"
	"fmt"
)

// ErrEmptyTerm is returned before any request is made when the search term is blank.
var ErrEmptyTerm = errors.New("urban: search term is empty")

// Kind classifies why a lookup could not produce an answer.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindStatus
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a *LookupError of the same kind.
var (
	ErrNetwork = errors.New("urban: service unreachable")
	ErrStatus  = errors.New("urban: unexpected response status")
	ErrParse   = errors.New("urban: malformed response")
)

// LookupError is a failure to reach or understand the dictionary service.
// It is never used for "no definition exists"; that is reported as absence.
type LookupError struct {
	Kind       Kind
	Term       string
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("urban: lookup %q: status %d: %v", e.Term, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("urban: lookup %q: %s: %v", e.Term, e.Kind, e.Err)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// Is matches the kind sentinels so callers can write errors.Is(err, urban.ErrNetwork).
func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrParse:
		return e.Kind == KindParse
	default:
		return false
	}
}
