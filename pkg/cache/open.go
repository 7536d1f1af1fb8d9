package cache

import (
	"context"
	"time"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/observability"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend   string
	Dir       string
	RedisAddr string
	RedisDB   int
	Password  string
}

// Open creates the backend named by opts.Backend, wrapped with
// [Instrumented]. An empty backend means "file".
func Open(ctx context.Context, opts Options) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch opts.Backend {
	case BackendFile, "":
		if opts.Dir == "" {
			return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "file cache requires a directory")
		}
		c, err = NewFileCache(opts.Dir)
	case BackendRedis:
		c, err = NewRedisCache(ctx, RedisOptions{Addr: opts.RedisAddr, DB: opts.RedisDB, Password: opts.Password})
	case BackendNone:
		c = NewNullCache()
	default:
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "unknown cache backend %q (must be file, redis, or none)", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrumented(c), nil
}

// Instrumented wraps c so every Get and Set is reported to the registered
// cache hooks, labelled with [KeyType].
func Instrumented(c Cache) Cache {
	return &instrumented{Cache: c}
}

type instrumented struct {
	Cache
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}

// Unwrap returns the backend behind an instrumented cache, or c itself.
func Unwrap(c Cache) Cache {
	if i, ok := c.(*instrumented); ok {
		return i.Cache
	}
	return c
}
