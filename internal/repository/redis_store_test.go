package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
)

func TestRedisStore_Create(t *testing.T) {
	ctx, st := suite.New(t)

	store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

	// When: Create is called
	id, err := store.Create(ctx)

	// Then: a fresh empty board is stored under the namespaced key with a TTL
	require.NoError(t, err)
	assert.Len(t, id, 2*DefaultIDBytes)

	board, found, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entity.Board{}, board)

	ttl, err := st.Storage.TTL(ctx, "session:test:"+id).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestRedisStore_Create_Collision(t *testing.T) {
	ctx, st := suite.New(t)

	store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)
	store.newID = func() string { return "fixed" }

	// Given: the only id the generator produces is already taken
	_, err := store.Create(ctx)
	require.NoError(t, err)

	// When: another session is created
	_, err = store.Create(ctx)

	// Then: ErrSessionIDExhausted should be returned
	require.ErrorIs(t, err, ErrSessionIDExhausted)
}

func TestRedisStore_Get(t *testing.T) {
	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

		// When: Get is called with a non-existent id
		board, found, err := store.Get(ctx, "9999999")

		// Then: found is false and no error is returned
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, entity.Board{}, board)
	})

	t.Run("Get_OtherNamespace", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a session created by a store in another namespace
		first := NewRedisStore(st.Storage, "", time.Minute, DefaultIDBytes)
		second := NewRedisStore(st.Storage, "", time.Minute, DefaultIDBytes)
		require.NotEqual(t, first.Namespace(), second.Namespace())

		id, err := first.Create(ctx)
		require.NoError(t, err)

		// When: the second store looks it up
		_, found, err := second.Get(ctx, id)

		// Then: it is not visible
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRedisStore_Update(t *testing.T) {
	t.Run("Update_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

		id, err := store.Create(ctx)
		require.NoError(t, err)

		// When: Update places X in the center
		found, err := store.Update(ctx, id, func(board *entity.Board) error {
			board[4] = entity.PlayerX
			return nil
		})

		// Then: the board is persisted
		require.NoError(t, err)
		assert.True(t, found)

		board, _, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, board[4])
	})

	t.Run("Update_FuncError", func(t *testing.T) {
		ctx, st := suite.New(t)

		store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

		id, err := store.Create(ctx)
		require.NoError(t, err)

		errBoom := errors.New("boom")

		// When: the update func fails after mutating its copy
		found, err := store.Update(ctx, id, func(board *entity.Board) error {
			board[0] = entity.PlayerX
			return errBoom
		})

		// Then: the error is returned unchanged and nothing is stored
		require.ErrorIs(t, err, errBoom)
		assert.True(t, found)

		board, _, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, board)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

		// When: Update is called with a non-existent id
		called := false
		found, err := store.Update(ctx, "9999999", func(*entity.Board) error {
			called = true
			return nil
		})

		// Then: found is false and the func is never run
		require.NoError(t, err)
		assert.False(t, found)
		assert.False(t, called)
	})

	t.Run("Update_Concurrent", func(t *testing.T) {
		ctx, st := suite.New(t)

		store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

		id, err := store.Create(ctx)
		require.NoError(t, err)

		// When: several writers each fill a different cell at once
		var wg sync.WaitGroup
		for position := 0; position < 5; position++ {
			position := position
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, updateErr := store.Update(ctx, id, func(board *entity.Board) error {
					board[position] = entity.PlayerX
					return nil
				})
				assert.NoError(t, updateErr)
			}()
		}
		wg.Wait()

		// Then: no write is lost
		board, _, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 5, board.Count(entity.PlayerX))
	})
}

func TestRedisStore_Reset(t *testing.T) {
	ctx, st := suite.New(t)

	store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

	// Given: a session with moves on it
	id, err := store.Create(ctx)
	require.NoError(t, err)
	_, err = store.Update(ctx, id, func(board *entity.Board) error {
		board[0] = entity.PlayerX
		board[4] = entity.PlayerO
		return nil
	})
	require.NoError(t, err)

	// When: Reset is called
	found, err := store.Reset(ctx, id)

	// Then: the board is empty again
	require.NoError(t, err)
	assert.True(t, found)

	board, _, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.Board{}, board)

	// And: resetting an unknown id does not create it
	found, err = store.Reset(ctx, "9999999")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = store.Get(ctx, "9999999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_Destroy(t *testing.T) {
	t.Run("Destroy_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

		id, err := store.Create(ctx)
		require.NoError(t, err)

		// When: Destroy is called with an existing id
		found, err := store.Destroy(ctx, id)

		// Then: the session is gone
		require.NoError(t, err)
		assert.True(t, found)

		_, found, err = store.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Destroy_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		store := NewRedisStore(st.Storage, "test", time.Minute, DefaultIDBytes)

		// When: Destroy is called with a non-existent id
		found, err := store.Destroy(ctx, "9999999")

		// Then: found is false and no error is returned
		require.NoError(t, err)
		assert.False(t, found)
	})
}
