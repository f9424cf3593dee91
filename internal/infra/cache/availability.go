package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hotel-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache keeps free-room query results in redis with a short TTL.
// It is best-effort: any redis failure degrades to a cache miss. The
// admission path never reads it, so staleness can only make the listing
// slightly conservative or optimistic, never double-book.
type AvailabilityCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *AvailabilityCache) GetFreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*queries.RoomView, bool) {
	data, err := c.rdb.Get(ctx, c.key(checkIn, checkOut)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("availability cache read failed", "error", err.Error())
		}
		return nil, false
	}

	var rooms []*queries.RoomView
	if err := json.Unmarshal([]byte(data), &rooms); err != nil {
		c.logger.Warn("availability cache entry corrupted", "error", err.Error())
		return nil, false
	}
	return rooms, true
}

func (c *AvailabilityCache) SetFreeRooms(ctx context.Context, checkIn, checkOut time.Time, rooms []*queries.RoomView) {
	data, err := json.Marshal(rooms)
	if err != nil {
		c.logger.Warn("availability cache encode failed", "error", err.Error())
		return
	}
	if err := c.rdb.Set(ctx, c.key(checkIn, checkOut), data, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache write failed", "error", err.Error())
	}
}

func (c *AvailabilityCache) key(checkIn, checkOut time.Time) string {
	return fmt.Sprintf("freerooms:%s:%s", checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
}
