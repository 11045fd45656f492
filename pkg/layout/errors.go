package layout

import (
	"errors"
	"fmt"
)

// Layout error sentinels. A *LayoutError unwraps to the sentinel of its Kind.
var (
	ErrInvalidField       = errors.New("invalid field")
	ErrFieldExceedsWord   = errors.New("field exceeds word width")
	ErrOverlappingFields  = errors.New("overlapping fields")
	ErrDuplicateFieldName = errors.New("duplicate field name")
)

// Kind classifies a layout failure.
type Kind uint8

const (
	// KindInvalidField is a negative offset, a width below one, or a word
	// width below one.
	KindInvalidField Kind = iota
	// KindExceedsWord is a field reaching past the top of the word.
	KindExceedsWord
	// KindOverlap is two fields sharing at least one bit.
	KindOverlap
	// KindDuplicateName is two fields with the same name.
	KindDuplicateName
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidField:
		return "invalid field"
	case KindExceedsWord:
		return "field exceeds word width"
	case KindOverlap:
		return "overlapping fields"
	case KindDuplicateName:
		return "duplicate field name"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindExceedsWord:
		return ErrFieldExceedsWord
	case KindOverlap:
		return ErrOverlappingFields
	case KindDuplicateName:
		return ErrDuplicateFieldName
	default:
		return ErrInvalidField
	}
}

// LayoutError reports why a field list cannot be laid out.
type LayoutError struct {
	Kind      Kind
	Field     string // offending field
	Other     string // second field for overlap / duplicate errors
	WordWidth int
	Detail    string
}

func (e *LayoutError) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Field != "" && e.Other != "":
		msg = fmt.Sprintf("%s: %s and %s", msg, e.Field, e.Other)
	case e.Field != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the sentinel for the error kind.
func (e *LayoutError) Unwrap() error {
	return e.Kind.sentinel()
}
