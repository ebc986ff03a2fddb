package adjustselection

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"calorie-workers/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// maxUpdateAttempts bounds optimistic retries when concurrent adjustments race on one tally.
const maxUpdateAttempts = 100

// TallyStore keeps in-progress selections in Redis, one JSON array per tally and kind.
type TallyStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewTallyStore(client *redis.Client, ttl time.Duration) *TallyStore {
	return &TallyStore{redis: client, ttl: ttl}
}

func tallyKey(tallyID string, kind Kind) string {
	return fmt.Sprintf("tally:%s:%s", tallyID, kind)
}

// Update reads the stored selection under WATCH, passes it to fn and writes the result in a
// MULTI/EXEC block. A write that loses the race is retried against the fresh value, so
// concurrent adjustments on one tally are never lost. A new or expired tally starts zeroed.
// Errors returned by fn are passed through unchanged.
func (s *TallyStore) Update(ctx context.Context, tallyID string, kind Kind, size int, fn func([]int) ([]int, error)) ([]int, error) {
	key := tallyKey(tallyID, kind)

	var updated []int
	var fnErr error
	txf := func(tx *redis.Tx) error {
		current, err := s.load(ctx, tx, key, kind, size)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return errors.NewCacheOperationFailedError("encode", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil && !stderrors.Is(err, redis.TxFailedErr) {
			return errors.NewCacheOperationFailedError("set", err)
		}
		if err == nil {
			updated = next
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.redis.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if fnErr != nil {
			return nil, fnErr
		}
		if stderrors.Is(err, redis.TxFailedErr) {
			continue
		}
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			return nil, err
		}
		return nil, errors.NewCacheOperationFailedError("watch", err)
	}
	return nil, errors.NewCacheOperationFailedError("watch",
		fmt.Errorf("%s tally %s: %w after %d attempts", kind, tallyID, redis.TxFailedErr, maxUpdateAttempts))
}

func (s *TallyStore) load(ctx context.Context, tx *redis.Tx, key string, kind Kind, size int) ([]int, error) {
	val, err := tx.Get(ctx, key).Result()
	if stderrors.Is(err, redis.Nil) {
		return make([]int, size), nil
	}
	if err != nil {
		return nil, errors.NewCacheOperationFailedError("get", err)
	}

	var selection []int
	if err := json.Unmarshal([]byte(val), &selection); err != nil {
		return nil, errors.NewCacheOperationFailedError("decode", err)
	}
	if len(selection) != size {
		return nil, errors.NewDimensionMismatchError(
			fmt.Sprintf("stored %s tally has %d entries, catalog has %d", kind, len(selection), size))
	}
	return selection, nil
}
