package brain

import "errors"

// Domain errors for telemetry decoding and feed sources.
var (
	// ErrEmptyPacket indicates a zero-length wire message.
	ErrEmptyPacket = errors.New("brain: empty packet")

	// ErrBadPacket indicates a message that is not a telemetry object.
	ErrBadPacket = errors.New("brain: malformed telemetry packet")

	// ErrBadActivity indicates a reservoir_activity value in neither of
	// the two accepted shapes (flat floats or [index,value] pairs).
	ErrBadActivity = errors.New("brain: reservoir activity has unrecognized shape")
)

// SourceError wraps an error with the feed source that produced it.
type SourceError struct {
	Source  string
	Wrapped error
}

func (e *SourceError) Error() string {
	return e.Source + ": " + e.Wrapped.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Wrapped
}
