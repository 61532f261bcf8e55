// Package cache keeps recent store results for the mobile listing query. A
// short-lived in-process tier sits in front of Redis, and every write to a
// listing drops both tiers.
//
// Entries are stored under the generation that was current when the lookup
// missed. Invalidate advances the generation, so a fill that read the store
// before a write lands under a key no later lookup will ask for.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

const (
	ListingsPrefix = "listings"

	// kept outside the listings: namespace so invalidation scans skip it
	generationKey = "listings-generation"
)

// Generation identifies a cache epoch. Get returns the one a miss should be
// filled under.
type Generation uint64

// noGeneration marks a lookup whose epoch could not be read. Set ignores it.
const noGeneration Generation = math.MaxUint64

type ListingCache interface {
	Get(ctx context.Context, key string) ([]models.Property, Generation, bool)
	Set(ctx context.Context, key string, gen Generation, properties []models.Property)
	Invalidate(ctx context.Context)
}

type Options struct {
	TTL      time.Duration
	LocalTTL time.Duration
	MaxItems int64
}

type TieredCache struct {
	local *ccache.Cache[[]models.Property]
	redis *redis.Client
	opts  Options
	gen   atomic.Uint64
}

// NewTieredCache builds the cache. rdb may be nil, in which case only the
// in-process tier is used.
func NewTieredCache(rdb *redis.Client, opts Options) *TieredCache {
	if opts.TTL <= 0 {
		opts.TTL = time.Minute
	}
	if opts.LocalTTL <= 0 || opts.LocalTTL > opts.TTL {
		opts.LocalTTL = opts.TTL
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = 500
	}
	return &TieredCache{
		local: ccache.New(ccache.Configure[[]models.Property]().MaxSize(opts.MaxItems)),
		redis: rdb,
		opts:  opts,
	}
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func (c *TieredCache) Get(ctx context.Context, key string) ([]models.Property, Generation, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		utils.Logger.WithError(err).Warn("cache generation read failed")
		return nil, noGeneration, false
	}
	entry := entryKey(key, gen)

	if item := c.local.Get(entry); item != nil && !item.Expired() {
		return item.Value(), gen, true
	}
	if c.redis == nil {
		return nil, gen, false
	}

	data, err := c.redis.Get(ctx, entry).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.Logger.WithError(err).WithField("key", entry).Warn("cache read failed")
		}
		return nil, gen, false
	}
	var properties []models.Property
	if err := json.Unmarshal([]byte(data), &properties); err != nil {
		utils.Logger.WithError(err).WithField("key", entry).Warn("cache entry unreadable")
		return nil, gen, false
	}
	c.local.Set(entry, properties, c.opts.LocalTTL)
	return properties, gen, true
}

func (c *TieredCache) Set(ctx context.Context, key string, gen Generation, properties []models.Property) {
	if gen == noGeneration {
		return
	}
	entry := entryKey(key, gen)
	c.local.Set(entry, properties, c.opts.LocalTTL)
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(properties)
	if err != nil {
		utils.Logger.WithError(err).WithField("key", entry).Warn("cache encode failed")
		return
	}
	if err := c.redis.Set(ctx, entry, data, c.opts.TTL).Err(); err != nil {
		utils.Logger.WithError(err).WithField("key", entry).Warn("cache write failed")
	}
}

// Invalidate advances the generation and then drops what it can of the old
// entries. If Redis is unreachable the generation may not move; entries then
// live until their TTL.
func (c *TieredCache) Invalidate(ctx context.Context) {
	c.gen.Add(1)
	c.local.DeletePrefix(ListingsPrefix + ":")
	if c.redis == nil {
		return
	}

	if err := c.redis.Incr(ctx, generationKey).Err(); err != nil {
		utils.Logger.WithError(err).Warn("cache generation bump failed")
	}

	var keys []string
	iter := c.redis.Scan(ctx, 0, ListingsPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.Logger.WithError(err).Warn("cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		utils.Logger.WithError(err).WithFields(logrus.Fields{"keys": len(keys)}).Warn("cache invalidation failed")
	}
}

// generation is shared through Redis when there is one, so every instance
// sees another instance's invalidation.
func (c *TieredCache) generation(ctx context.Context) (Generation, error) {
	if c.redis == nil {
		return Generation(c.gen.Load()), nil
	}
	n, err := c.redis.Get(ctx, generationKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return Generation(n), err
}

func entryKey(key string, gen Generation) string {
	return key + "@" + strconv.FormatUint(uint64(gen), 10)
}

func (c *TieredCache) Close() {
	c.local.Stop()
	if c.redis != nil {
		c.redis.Close()
	}
}

// QueryKey builds a stable key from query parameters, independent of map order.
func QueryKey(prefix string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(params[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return prefix + ":" + hex.EncodeToString(hash[:])
}

// Nop never hits. It is used when caching is switched off.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]models.Property, Generation, bool) {
	return nil, 0, false
}
func (Nop) Set(context.Context, string, Generation, []models.Property) {}
func (Nop) Invalidate(context.Context)                                 {}
