package log

import (
	"time"
)

// Event is one trace entry. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one front-end session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"3,keyasint"`

	// Frontend names the emitting program ("cli", "repl", "web").
	Frontend string `cbor:"4,keyasint,omitempty"`

	// View is the navigation view name (dashboard, instances, registers, detail).
	View string `cbor:"5,keyasint,omitempty"`

	// Path is the navigation path ("GROUP/PERIPHERAL/REGISTER").
	Path string `cbor:"6,keyasint,omitempty"`

	// Segments and Fields count the bit diagram segments and field rows of
	// a rendered register.
	Segments int `cbor:"7,keyasint,omitempty"`
	Fields   int `cbor:"8,keyasint,omitempty"`

	// Kind-specific payload.
	Navigate *NavigateData `cbor:"9,keyasint,omitempty"`
	Load     *LoadData     `cbor:"10,keyasint,omitempty"`
	Error    *ErrorData    `cbor:"11,keyasint,omitempty"`
}

// Kind classifies a trace event.
type Kind uint8

const (
	// KindLoad records a dataset load.
	KindLoad Kind = 0
	// KindNavigate records a navigation state change.
	KindNavigate Kind = 1
	// KindRender records a rendered view.
	KindRender Kind = 2
	// KindError records a failed lookup or layout.
	KindError Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "LOAD"
	case KindNavigate:
		return "NAVIGATE"
	case KindRender:
		return "RENDER"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseKind converts a kind name (case-sensitive, as printed by String).
func ParseKind(s string) (Kind, bool) {
	for k := KindLoad; k <= KindError; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// NavigateData captures the move that produced a navigation event.
type NavigateData struct {
	// Action is the applied action ("select-group", "back", ...).
	Action string `cbor:"1,keyasint"`

	// From is the path before the move.
	From string `cbor:"2,keyasint,omitempty"`

	// FromView is the view before the move.
	FromView string `cbor:"3,keyasint,omitempty"`
}

// LoadData summarizes a dataset load.
type LoadData struct {
	// Source is the dataset path.
	Source string `cbor:"1,keyasint"`

	Peripherals int `cbor:"2,keyasint"`
	Groups      int `cbor:"3,keyasint"`

	// Failed counts dataset files that could not be parsed.
	Failed int `cbor:"4,keyasint,omitempty"`

	// Duration is the load time, stored as nanoseconds.
	Duration time.Duration `cbor:"5,keyasint,omitempty"`
}

// ErrorData captures a failure.
type ErrorData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// LayoutKind is set for register layout errors ("overlap", ...).
	LayoutKind string `cbor:"2,keyasint,omitempty"`

	// Field is the offending field for layout errors.
	Field string `cbor:"3,keyasint,omitempty"`

	// Context describes what was being done.
	Context string `cbor:"4,keyasint,omitempty"`
}
