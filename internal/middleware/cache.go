package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"cinema-box-office/internal/config"
)

// cachedResponse buffers a handler's output so it can be stored in
// Redis after the handler returns.
type cachedResponse struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *cachedResponse) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *cachedResponse) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// Cache returns a Redis-backed response cache for GET requests.  Keys
// combine route path and raw query string.  Only 200 responses no
// larger than cfg.MaxBodyBytes are stored, for cfg.TTL.  A nil Redis
// client or any Redis failure disables caching for the request; the
// handler always runs in that case.
func Cache(rdb *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s:%s?%s", cfg.Prefix, c.Path(), c.Request().URL.RawQuery)

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
			}

			buf := &cachedResponse{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = buf
			if err := next(c); err != nil {
				return err
			}
			if buf.status == http.StatusOK && buf.body.Len() <= cfg.MaxBodyBytes {
				_ = rdb.Set(ctx, key, buf.body.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}

// InvalidateCache removes every cached entry under the configured
// prefix.  Write handlers call it after mutating catalog state so list
// endpoints never serve stale schedules for longer than one request.
func InvalidateCache(rdb *redis.Client, cfg config.CacheConfig) {
	if rdb == nil || !cfg.Enabled {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	iter := rdb.Scan(ctx, 0, cfg.Prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		_ = rdb.Del(ctx, iter.Val()).Err()
	}
}
