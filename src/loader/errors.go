package loader

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a LoadError.
type ErrorKind int

const (
	NotFound ErrorKind = iota + 1
	ParseFailure
	Empty
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case ParseFailure:
		return "parse failure"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// LoadError is returned by every TableLoader. Detail carries the underlying parser
// message for ParseFailure.
type LoadError struct {
	Kind   ErrorKind
	Path   string
	Detail string
	Err    error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("file not found: %s", e.Path)
	case Empty:
		return fmt.Sprintf("file %s contains no data", e.Path)
	default:
		return fmt.Sprintf("failed to parse %s: %s", e.Path, e.Detail)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

func kindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

func IsNotFound(err error) bool     { return kindOf(err) == NotFound }
func IsParseFailure(err error) bool { return kindOf(err) == ParseFailure }
func IsEmpty(err error) bool        { return kindOf(err) == Empty }
