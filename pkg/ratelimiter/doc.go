// Package ratelimiter throttles HTTP endpoints with a token bucket.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that finds too
// few tokens is denied without consuming any.
//
// Bucket state lives in a Store: MemoryStore for a single process,
// RedisStore when several processes share one Redis.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     20,
//		RefillInterval: time.Minute,
//	})
//
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ByClientIP())).Post("/trusted-users", ...)
//
// Middleware sets X-RateLimit-* headers on every response and Retry-After on
// denials. Store failures let the request through and are logged.
package ratelimiter
