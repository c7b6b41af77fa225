package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type memorySession struct {
	mu    sync.Mutex
	board entity.Board
}

// MemoryStore keeps sessions in process memory. Each session has its own lock,
// so moves on different sessions never wait on each other.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	newID    idGenerator
}

func NewMemoryStore(idBytes int) *MemoryStore {
	return newMemoryStore(newIDGenerator(idBytes))
}

func newMemoryStore(newID idGenerator) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
		newID:    newID,
	}
}

func (that *MemoryStore) Create(_ context.Context) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		id := that.newID()
		if _, exists := that.sessions[id]; exists {
			continue
		}

		that.sessions[id] = &memorySession{}

		return id, nil
	}

	return "", ErrSessionIDExhausted
}

func (that *MemoryStore) Get(_ context.Context, id string) (entity.Board, bool, error) {
	session, ok := that.lookup(id)
	if !ok {
		return entity.Board{}, false, nil
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	return session.board, true, nil
}

func (that *MemoryStore) Update(_ context.Context, id string, fn func(board *entity.Board) error) (bool, error) {
	session, ok := that.lookup(id)
	if !ok {
		return false, nil
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	board := session.board
	if err := fn(&board); err != nil {
		return true, err
	}

	session.board = board

	return true, nil
}

func (that *MemoryStore) Reset(_ context.Context, id string) (bool, error) {
	session, ok := that.lookup(id)
	if !ok {
		return false, nil
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.board.Reset()

	return true, nil
}

func (that *MemoryStore) Destroy(_ context.Context, id string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return false, nil
	}

	delete(that.sessions, id)

	return true, nil
}

// Len - number of live sessions.
func (that *MemoryStore) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}

func (that *MemoryStore) lookup(id string) (*memorySession, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]

	return session, ok
}
