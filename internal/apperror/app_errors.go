package apperror

import "errors"

const internalMessage = "Internal Server Error"

var (
	ErrInvalidPosition  = errors.New("invalid position")
	ErrPositionTaken    = errors.New("position is already taken")
	ErrUnknownSession   = errors.New("unknown session")
	ErrMalformedRequest = errors.New("malformed request")
	ErrGameFinished     = errors.New("game is already finished")
)

// UserMessage - returns the text shown to players for a known error, or a generic one.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPosition):
		return "Invalid position (expected 1-9)"
	case errors.Is(err, ErrPositionTaken):
		return "Position already taken"
	case errors.Is(err, ErrUnknownSession):
		return "Invalid session ID"
	case errors.Is(err, ErrMalformedRequest):
		return "Malformed request"
	case errors.Is(err, ErrGameFinished):
		return "Game is already finished"
	default:
		return internalMessage
	}
}

// IsClientError - reports whether err was caused by the caller's input rather than by the service.
func IsClientError(err error) bool {
	return UserMessage(err) != internalMessage
}
