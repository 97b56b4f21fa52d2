package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const (
	verdictKeyPrefix = "truelens:sb:"
	verdictTTL       = 12 * time.Hour
)

func ConnectRedis(redisURL string) error {
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// VerdictCache stores reputation-check verdicts keyed by URL. Repeated
// ingestion runs hit the same front pages, so caching keeps the external
// reputation service out of the hot path.
type VerdictCache struct {
	client *redis.Client
}

func NewVerdictCache(client *redis.Client) *VerdictCache {
	return &VerdictCache{client: client}
}

// GetVerdict returns (safe, found). A cache miss or any Redis error reads
// as not found; the caller falls through to the live check.
func (c *VerdictCache) GetVerdict(url string) (bool, bool) {
	if c == nil || c.client == nil {
		return false, false
	}

	val, err := c.client.Get(Ctx, verdictKeyPrefix+url).Result()
	if err != nil {
		return false, false
	}
	return val == "safe", true
}

func (c *VerdictCache) SetVerdict(url string, safe bool) {
	if c == nil || c.client == nil {
		return
	}

	val := "unsafe"
	if safe {
		val = "safe"
	}
	c.client.Set(Ctx, verdictKeyPrefix+url, val, verdictTTL)
}
