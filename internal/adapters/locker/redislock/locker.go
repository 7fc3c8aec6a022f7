package redislock

import (
	"context"
	"errors"
	"time"

	"packmates/internal/ports/locker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockTimeout = errors.New("lock wait timeout")

// releaseScript borra la key solo si el token sigue siendo el nuestro.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Options struct {
	// Prefix se antepone a cada key (default "packmates:lock:").
	Prefix string

	// TTL del lock; lo libera Redis si el proceso muere (default 10s).
	TTL time.Duration

	// Retry entre intentos de SET NX (default 25ms).
	Retry time.Duration

	// Wait máximo si el ctx no tiene deadline (default 5s).
	Wait time.Duration
}

// Locker implementa locker.Locker con SET NX PX, válido entre varias instancias.
type Locker struct {
	client redis.UniversalClient
	opts   Options
}

var _ locker.Locker = (*Locker)(nil)

func New(client redis.UniversalClient, opts Options) *Locker {
	if opts.Prefix == "" {
		opts.Prefix = "packmates:lock:"
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.Retry <= 0 {
		opts.Retry = 25 * time.Millisecond
	}
	if opts.Wait <= 0 {
		opts.Wait = 5 * time.Second
	}
	return &Locker{client: client, opts: opts}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Wait)
		defer cancel()
	}

	k := l.opts.Prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.opts.Retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.opts.TTL).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrLockTimeout
			}
			return nil, err
		}
		if ok {
			return func() {
				// contexto propio: el del request puede estar cancelado
				rctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(rctx, l.client, []string{k}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}
