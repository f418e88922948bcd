package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FANATBEBRbl/booking-app/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// unlockScript deletes the lock only if it still holds our token, so an
// expired lock taken over by another request is never released by us.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisRepo struct {
	client         *redis.Client
	lockTTL        time.Duration
	acquireTimeout time.Duration
	retryInterval  time.Duration
}

type LockOptions struct {
	TTL            time.Duration
	AcquireTimeout time.Duration
	RetryInterval  time.Duration
}

func New(ctx context.Context, address string, password string, db int, opts LockOptions) (*RedisRepo, error) {
	const op = "storage.redis.New"

	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisRepo{
		client:         rdb,
		lockTTL:        opts.TTL,
		acquireTimeout: opts.AcquireTimeout,
		retryInterval:  opts.RetryInterval,
	}, nil
}

// Lock берет блокировку слота (комната + дата) на время проверки и записи брони.
func (r *RedisRepo) Lock(ctx context.Context, roomID int64, date string) (func(), error) {
	const op = "storage.redis.Lock"

	key := lockKey(roomID, date)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, r.acquireTimeout)
	defer cancel()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.lockTTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, storage.ErrSlotBusy)
		case <-time.After(r.retryInterval):
		}
	}

	return func() {
		// отдельный контекст: запрос мог уже завершиться
		ctx, cancel := context.WithTimeout(context.Background(), r.lockTTL)
		defer cancel()

		_ = unlockScript.Run(ctx, r.client, []string{key}, token).Err()
	}, nil
}

// Close закрывает соединение с redis.
func (r *RedisRepo) Close() {
	r.client.Close()
}

func lockKey(roomID int64, date string) string {
	return fmt.Sprintf("booking-lock:%s:room%d", date, roomID)
}
