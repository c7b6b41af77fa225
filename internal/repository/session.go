package repository

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/pkg"
)

const (
	DefaultIDBytes    = 8
	maxCreateAttempts = 16
)

var ErrSessionIDExhausted = errors.New("could not generate a unique session id")

// SessionStore maps session ids to boards. Unknown ids are reported through the bool result;
// errors are reserved for storage failures and for errors returned by an update func.
type SessionStore interface {
	Create(ctx context.Context) (string, error)
	Get(ctx context.Context, id string) (entity.Board, bool, error)

	// Update runs fn on the session board while no other update of that session can run.
	// The board is only stored if fn returns nil.
	Update(ctx context.Context, id string, fn func(board *entity.Board) error) (bool, error)

	Reset(ctx context.Context, id string) (bool, error)
	Destroy(ctx context.Context, id string) (bool, error)
}

type idGenerator func() string

func newIDGenerator(size int) idGenerator {
	if size <= 0 {
		size = DefaultIDBytes
	}

	return func() string {
		return pkg.GenerateSessionID(size)
	}
}
