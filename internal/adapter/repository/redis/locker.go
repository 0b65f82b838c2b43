package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned by Unlock when the token no longer owns the key.
var ErrLockNotHeld = errors.New("lock not held")

// Deletes the key only while it still carries the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implements usecase.Locker with SET NX PX and a token check on release.
type Locker struct {
	client redis.UniversalClient
	prefix string
}

// NewLocker creates a new Locker.
func NewLocker(client redis.UniversalClient) *Locker {
	return &Locker{
		client: client,
		prefix: "corebank:lock:",
	}
}

// TryLock acquires key for ttl without waiting.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := ulid.Make().String()

	ok, err := l.client.SetNX(ctx, l.prefix+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// Unlock releases key if token still owns it.
func (l *Locker) Unlock(ctx context.Context, key, token string) error {
	n, err := unlockScript.Run(ctx, l.client, []string{l.prefix + key}, token).Int()
	if err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrLockNotHeld, key)
	}

	return nil
}
