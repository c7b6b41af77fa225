package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/pkg"
)

const maxUpdateAttempts = 32

var ErrUpdateConflict = errors.New("session was modified concurrently too many times")

// RedisStore keeps boards as JSON under session:<namespace>:<id>.
// Update uses WATCH/MULTI, so two writers of the same session never interleave.
type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
	newID     idGenerator
}

// NewRedisStore - an empty namespace is replaced with a random one,
// which scopes sessions to the current process.
func NewRedisStore(client *redis.Client, namespace string, ttl time.Duration, idBytes int) *RedisStore {
	if namespace == "" {
		namespace = pkg.GenerateSessionID(DefaultIDBytes)
	}

	return &RedisStore{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
		newID:     newIDGenerator(idBytes),
	}
}

func (that *RedisStore) Namespace() string {
	return that.namespace
}

func (that *RedisStore) Create(ctx context.Context) (string, error) {
	payload, err := encodeBoard(entity.Board{})
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		id := that.newID()

		created, err := that.client.SetNX(ctx, that.key(id), payload, that.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("failed to create session: %w", err)
		}

		if created {
			return id, nil
		}
	}

	return "", ErrSessionIDExhausted
}

func (that *RedisStore) Get(ctx context.Context, id string) (entity.Board, bool, error) {
	response, err := that.client.Get(ctx, that.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.Board{}, false, nil
	}

	if err != nil {
		return entity.Board{}, false, fmt.Errorf("failed to get session: %w", err)
	}

	board, err := decodeBoard(response)
	if err != nil {
		return entity.Board{}, false, err
	}

	return board, true, nil
}

func (that *RedisStore) Update(ctx context.Context, id string, fn func(board *entity.Board) error) (bool, error) {
	key := that.key(id)

	var (
		found bool
		fnErr error
	)

	txf := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}

		if err != nil {
			return err
		}

		found = true

		board, err := decodeBoard(response)
		if err != nil {
			return err
		}

		if fnErr = fn(&board); fnErr != nil {
			return nil
		}

		payload, err := encodeBoard(board)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, that.ttl)
			return nil
		})

		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		found, fnErr = false, nil

		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return false, fmt.Errorf("failed to update session: %w", err)
		}

		return found, fnErr
	}

	return false, ErrUpdateConflict
}

func (that *RedisStore) Reset(ctx context.Context, id string) (bool, error) {
	payload, err := encodeBoard(entity.Board{})
	if err != nil {
		return false, err
	}

	// SET XX only overwrites an existing key
	reset, err := that.client.SetXX(ctx, that.key(id), payload, that.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reset session: %w", err)
	}

	return reset, nil
}

func (that *RedisStore) Destroy(ctx context.Context, id string) (bool, error) {
	deleted, err := that.client.Del(ctx, that.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	return deleted > 0, nil
}

func (that *RedisStore) key(id string) string {
	return "session:" + that.namespace + ":" + id
}

func encodeBoard(board entity.Board) ([]byte, error) {
	payload, err := json.Marshal(board)
	if err != nil {
		return nil, fmt.Errorf("could not marshal board: %w", err)
	}

	return payload, nil
}

func decodeBoard(payload []byte) (entity.Board, error) {
	var board entity.Board
	if err := json.Unmarshal(payload, &board); err != nil {
		return entity.Board{}, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	return board, nil
}
