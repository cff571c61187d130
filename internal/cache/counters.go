package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// GetLikeCount reads a post's cached like counter. The second return
// value reports whether the cache held a value.
func GetLikeCount(ctx context.Context, postID uint) (int64, bool) {
	if client == nil {
		return 0, false
	}
	val, err := client.Get(ctx, LikeCountKey(postID)).Int64()
	if err != nil {
		return 0, false
	}
	return val, true
}

// SetLikeCount backfills a post's like counter after a database read.
func SetLikeCount(ctx context.Context, postID uint, count int64) {
	if client == nil {
		return
	}
	client.Set(ctx, LikeCountKey(postID), count, LikeCountTTL)
}

// BumpLikeCount adjusts an existing cached counter by delta. A missing
// key is left missing so the next read repopulates from the database.
func BumpLikeCount(ctx context.Context, postID uint, delta int64) {
	if client == nil {
		return
	}
	key := LikeCountKey(postID)
	err := client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Int64()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		next := val + delta
		if next < 0 {
			next = 0
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, next, LikeCountTTL)
			return nil
		})
		return err
	}, key)
	if err != nil && !errors.Is(err, redis.Nil) {
		// stale value is tolerable; drop the key and let reads repopulate
		client.Del(ctx, key)
	}
}
