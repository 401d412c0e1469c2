package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// generations outlive values by far; a reader would have to stall this long
// for an expired generation to be mistaken for its own
const generationTTL = 24 * time.Hour

// fillScript sets KEYS[1] only while KEYS[2] (the generation) equals ARGV[1].
var fillScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if not gen then gen = "0" end
if gen ~= ARGV[1] then return 0 end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis is a Cache backed by a shared Redis client.
type Redis struct {
	redisdb *redis.Client
	ttl     time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return NewRedisFromClient(redisdb, cfg.TTL)
}

func NewRedisFromClient(redisdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Redis{redisdb: redisdb, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.redisdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return val, nil
}

func (c *Redis) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := c.redisdb.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *Redis) Fill(ctx context.Context, key string, gen int64, val []byte) (bool, error) {
	n, err := fillScript.Run(ctx, c.redisdb,
		[]string{key, generationKey(key)},
		gen, val, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (c *Redis) Invalidate(ctx context.Context, key string) error {
	genKey := generationKey(key)

	_, err := c.redisdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, key)
		return nil
	})
	return err
}

// Ping checks redis connectivity.
func (c *Redis) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.redisdb.Close()
}
