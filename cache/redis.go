package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(addr, password string) *RedisRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &RedisRepository{client: client}
}

func (repository *RedisRepository) Ping() error {
	return repository.client.Ping().Err()
}

func (repository *RedisRepository) SetKey(key string, value []byte, ttl time.Duration) error {
	if err := repository.client.Set(key, value, ttl).Err(); err != nil {
		return fmt.Errorf("could not set redis key %s: %w", key, err)
	}
	return nil
}

// Get returns the raw value stored under key. A missing key is reported
// with ok=false and no error.
func (repository *RedisRepository) Get(key string) ([]byte, bool, error) {
	value, err := repository.client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not get redis key %s: %w", key, err)
	}
	return value, true, nil
}

func (repository *RedisRepository) Delete(key string) error {
	return repository.client.Del(key).Err()
}

const scanCount = 500

// DeleteMatching removes every key matching pattern and reports how many
// were deleted. It walks the keyspace with SCAN so redis is never blocked.
func (repository *RedisRepository) DeleteMatching(pattern string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := repository.client.Scan(cursor, pattern, scanCount).Result()
		if err != nil {
			return deleted, fmt.Errorf("could not scan redis keys %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			n, err := repository.client.Del(keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("could not delete redis keys %s: %w", pattern, err)
			}
			deleted += n
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

func (repository *RedisRepository) Close() error {
	return repository.client.Close()
}
