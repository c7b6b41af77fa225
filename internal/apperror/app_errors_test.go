package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	t.Run("Wrapped errors keep their message", func(t *testing.T) {
		// Given: a sentinel wrapped twice
		err := fmt.Errorf("failed to play turn: %w", fmt.Errorf("invalid turn: %w", ErrPositionTaken))

		// Then: the player-facing text is still found
		assert.Equal(t, "Position already taken", UserMessage(err))
		assert.True(t, IsClientError(err))
	})

	t.Run("Unknown errors are internal", func(t *testing.T) {
		err := errors.New("connection refused")

		assert.Equal(t, "Internal Server Error", UserMessage(err))
		assert.False(t, IsClientError(err))
	})

	t.Run("Every sentinel has its own message", func(t *testing.T) {
		messages := map[string]struct{}{}
		for _, err := range []error{ErrInvalidPosition, ErrPositionTaken, ErrUnknownSession, ErrMalformedRequest, ErrGameFinished} {
			assert.True(t, IsClientError(err), err.Error())
			messages[UserMessage(err)] = struct{}{}
		}

		assert.Len(t, messages, 5)
	})
}
