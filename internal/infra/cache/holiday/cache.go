package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

const (
	keyPrefix = "holiday:"

	// noneMarker хранится для дат без праздника, чтобы не ходить в бэкенд повторно
	noneMarker = "none"
)

// Cache read-through кэш праздников в Redis
type Cache struct {
	client *redis.Client
	source Source
	ttl    time.Duration
	logger Logger
}

// NewCache создает новый экземпляр кэша
// client может быть nil: тогда все запросы идут напрямую в источник
func NewCache(client *redis.Client, source Source, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// LookupHoliday возвращает праздник на дату или nil, если праздника нет
// Ошибки Redis не прерывают запрос, а только логируются
func (c *Cache) LookupHoliday(ctx context.Context, date string) (*domain.Holiday, error) {
	if h, ok := c.get(ctx, date); ok {
		return h, nil
	}

	resp, err := c.source.GetHoliday(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: LookupHoliday - fetch date=%s: %v", ErrSource, date, err)
	}

	h := resp.ToDomain()
	c.set(ctx, date, h)
	return h, nil
}

// Invalidate удаляет закэшированное значение для даты
func (c *Cache) Invalidate(ctx context.Context, date string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keyPrefix+date).Err()
}

func (c *Cache) get(ctx context.Context, date string) (*domain.Holiday, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, keyPrefix+date).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Holiday cache: failed to read date=%s: %v", date, err)
		}
		return nil, false
	}

	if raw == noneMarker {
		return nil, true
	}

	var h domain.Holiday
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		c.logger.Warn("Holiday cache: corrupted entry date=%s: %v", date, err)
		return nil, false
	}
	return &h, true
}

func (c *Cache) set(ctx context.Context, date string, h *domain.Holiday) {
	if c.client == nil {
		return
	}

	value := noneMarker
	if h != nil {
		payload, err := json.Marshal(h)
		if err != nil {
			c.logger.Warn("Holiday cache: failed to encode date=%s: %v", date, err)
			return
		}
		value = string(payload)
	}

	if err := c.client.Set(ctx, keyPrefix+date, value, c.ttl).Err(); err != nil {
		c.logger.Warn("Holiday cache: failed to write date=%s: %v", date, err)
	}
}
