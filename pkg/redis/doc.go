// Package redis connects a go-redis client from a URL with bounded retries
// and exposes a readiness probe for it.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
