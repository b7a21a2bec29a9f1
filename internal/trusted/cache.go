package trusted

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unada-gw/trustform/pkg/logger"
)

const (
	cacheKeyPrefix  = "trusted:mac:"
	DefaultCacheTTL = 5 * time.Minute
	scanBatchSize   = 100
)

// CacheClient is the part of redis.Cmdable the cache needs.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// CachedStore puts a read-through Redis cache in front of FindByMAC, the
// lookup the captive portal runs on every association. Writes go to the
// wrapped store first. Update then rewrites the entry for the new MAC,
// other writes drop the affected keys.
//
// Redis failures never fail a call: reads fall back to the store and
// failed invalidations are logged.
type CachedStore struct {
	Store
	client CacheClient
	ttl    time.Duration
	log    *slog.Logger
}

// NewCachedStore wraps store. A non-positive ttl means DefaultCacheTTL.
func NewCachedStore(store Store, client CacheClient, ttl time.Duration, log *slog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &CachedStore{
		Store:  store,
		client: client,
		ttl:    ttl,
		log:    log.With(logger.Component("trusted.cache")),
	}
}

func cacheKey(mac string) string { return cacheKeyPrefix + mac }

func (c *CachedStore) FindByMAC(ctx context.Context, mac string) (TrustedUser, error) {
	key := cacheKey(mac)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var u TrustedUser
		if jerr := json.Unmarshal(raw, &u); jerr == nil {
			return u, nil
		}
		c.log.WarnContext(ctx, "dropping undecodable cache entry", logger.MAC(mac))
	case !errors.Is(err, redis.Nil):
		c.log.WarnContext(ctx, "cache read failed", logger.MAC(mac), logger.Error(err))
	}

	u, err := c.Store.FindByMAC(ctx, mac)
	if err != nil {
		return TrustedUser{}, err
	}

	c.put(ctx, u)
	return u, nil
}

// Insert drops the keys of both the submitted and the stored MAC.
func (c *CachedStore) Insert(ctx context.Context, u TrustedUser) (TrustedUser, error) {
	stored, err := c.Store.Insert(ctx, u)
	if err != nil {
		return TrustedUser{}, err
	}
	c.invalidate(ctx, u.MACAddress, stored.MACAddress)
	return stored, nil
}

func (c *CachedStore) InsertAll(ctx context.Context, users []TrustedUser) error {
	if err := c.Store.InsertAll(ctx, users); err != nil {
		return err
	}
	macs := make([]string, 0, len(users))
	for _, u := range users {
		macs = append(macs, u.MACAddress)
	}
	for chunk := range slices.Chunk(macs, scanBatchSize) {
		c.invalidate(ctx, chunk...)
	}
	return nil
}

// Update writes the entry for the new MAC through, so a touched device keeps
// hitting the cache. The entry holds whichever user the store resolves the
// MAC to, not necessarily u.
func (c *CachedStore) Update(ctx context.Context, u TrustedUser) error {
	old, err := c.Store.FindByID(ctx, u.FacebookID)
	if err != nil {
		return err
	}
	if err := c.Store.Update(ctx, u); err != nil {
		return err
	}
	if old.MACAddress != u.MACAddress {
		c.invalidate(ctx, old.MACAddress)
	}

	current, err := c.Store.FindByMAC(ctx, u.MACAddress)
	if err != nil {
		c.log.WarnContext(ctx, "cache refresh failed", logger.MAC(u.MACAddress), logger.Error(err))
		c.invalidate(ctx, u.MACAddress)
		return nil
	}
	c.put(ctx, current)
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, facebookID string) error {
	old, err := c.Store.FindByID(ctx, facebookID)
	if err != nil {
		return err
	}
	if err := c.Store.Delete(ctx, facebookID); err != nil {
		return err
	}
	c.invalidate(ctx, old.MACAddress)
	return nil
}

// DeleteAll purges every trusted:mac: key. Purge failures are logged only.
func (c *CachedStore) DeleteAll(ctx context.Context) error {
	if err := c.Store.DeleteAll(ctx); err != nil {
		return err
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, cacheKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			c.log.WarnContext(ctx, "cache scan failed", logger.Error(err))
			return nil
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.log.WarnContext(ctx, "cache purge failed", logger.Error(err))
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (c *CachedStore) put(ctx context.Context, u TrustedUser) {
	payload, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(u.MACAddress), payload, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "cache write failed", logger.MAC(u.MACAddress), logger.Error(err))
	}
}

func (c *CachedStore) invalidate(ctx context.Context, macs ...string) {
	keys := make([]string, 0, len(macs))
	for _, mac := range macs {
		if mac != "" {
			keys = append(keys, cacheKey(mac))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.WarnContext(ctx, "cache invalidation failed", logger.Error(err))
	}
}
