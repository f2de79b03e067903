package steg

import "fmt"

// ValidationError reports a message that cannot be embedded, such as an
// empty or all whitespace one.
type ValidationError string

func (e ValidationError) Error() string { return "steg: invalid message: " + string(e) }

// CapacityError reports a message that is too long for the image.
type CapacityError struct {
	Max    int // Maximum bytes the image can hold, including the terminator
	Needed int // Bytes required by the message, including the terminator
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("steg: message too long, maximum %d bytes allowed but %d bytes needed", e.Max, e.Needed)
}

// DecodeError reports that the recovered bytes could not be decoded.
type DecodeError string

func (e DecodeError) Error() string { return "steg: failed to decode message: " + string(e) }
