package dailycap

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLedger stores counters in Redis so caps hold across replicas
type RedisLedger struct {
	rdb *redis.Client
}

// NewRedisLedger wraps a go-redis client
func NewRedisLedger(rdb *redis.Client) *RedisLedger {
	return &RedisLedger{rdb: rdb}
}

func redisKey(b Bucket) string {
	return fmt.Sprintf("%s:%s", RedisKeyPrefix, b.String())
}

// Reserve implements Ledger. The counter is incremented first; any excess over
// the limit is handed back with a compensating DECRBY.
func (l *RedisLedger) Reserve(ctx context.Context, b Bucket, amount, limit int) (int, error) {
	if amount <= 0 {
		return 0, nil
	}
	key := redisKey(b)

	pipe := l.rdb.TxPipeline()
	incr := pipe.IncrBy(ctx, key, int64(amount))
	pipe.Expire(ctx, key, RedisKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf(ErrMsgReserveFailed, b.Kind, err)
	}

	total := int(incr.Val())
	if total <= limit {
		return amount, nil
	}

	excess := total - limit
	if excess > amount {
		excess = amount
	}
	if err := l.rdb.DecrBy(ctx, key, int64(excess)).Err(); err != nil {
		return 0, fmt.Errorf(ErrMsgReserveFailed, b.Kind, err)
	}
	return amount - excess, nil
}

// releaseScript decrements a counter without taking it below zero
var releaseScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
local left = redis.call("DECRBY", KEYS[1], ARGV[1])
if left < 0 then
  redis.call("SET", KEYS[1], 0, "KEEPTTL")
  return 0
end
return left
`)

// Release implements Ledger
func (l *RedisLedger) Release(ctx context.Context, b Bucket, amount int) error {
	if amount <= 0 {
		return nil
	}
	if err := releaseScript.Run(ctx, l.rdb, []string{redisKey(b)}, amount).Err(); err != nil {
		return fmt.Errorf(ErrMsgReleaseFailed, b.Kind, err)
	}
	return nil
}

// Used implements Ledger
func (l *RedisLedger) Used(ctx context.Context, b Bucket) (int, error) {
	n, err := l.rdb.Get(ctx, redisKey(b)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUsageFailed, b.Kind, err)
	}
	return n, nil
}
