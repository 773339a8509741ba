// SPDX-License-Identifier: MIT

package parser

import (
	"errors"
	"fmt"
)

// ErrUnknownCommandType is returned when decoding an unrecognised command
// type name.
var ErrUnknownCommandType = errors.New("parser: unknown command type")

// CommandType classifies the intent of an utterance.
type CommandType int

const (
	// Unparseable means no location fragment was found. It is the zero
	// value so an empty ParsedInstruction is unparseable.
	Unparseable CommandType = iota

	// Navigate asks for a route to the destination.
	Navigate

	// Search asks where the destination is.
	Search
)

// String returns the lower-case wire name of t.
func (t CommandType) String() string {
	switch t {
	case Unparseable:
		return "unparseable"
	case Navigate:
		return "navigate"
	case Search:
		return "search"
	default:
		return fmt.Sprintf("CommandType(%d)", int(t))
	}
}

// MarshalText encodes t by name.
func (t CommandType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (t *CommandType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unparseable":
		*t = Unparseable
	case "navigate":
		*t = Navigate
	case "search":
		*t = Search
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommandType, b)
	}
	return nil
}

// ParsedInstruction is the structured form of an utterance.
// Absent fields are empty strings.
type ParsedInstruction struct {
	CommandType CommandType `json:"command_type"`

	// Destination is the canonical location string, e.g. "3楼302教室".
	Destination string `json:"destination,omitempty"`

	// Floor is the canonical floor given in the text, e.g. "3楼". A floor
	// inferred from the room number is not reported here.
	Floor string `json:"floor,omitempty"`

	// RoomNumber is the numeric room string, e.g. "302".
	RoomNumber string `json:"room_number,omitempty"`

	// Marker is the keyword that decided the command type. Empty when the
	// type was defaulted.
	Marker string `json:"marker,omitempty"`
}

// Parseable reports whether a destination was recognised.
func (p ParsedInstruction) Parseable() bool {
	return p.CommandType != Unparseable
}
