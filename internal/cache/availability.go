package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const availabilityTTL = 30 * time.Second

// Availability guarda por alguns segundos a lista de horários de uma
// data. As leituras de reservas/bloqueios são a parte cara do cálculo;
// falha de Redis degrada para o cálculo direto, nunca para erro.
type Availability struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewAvailability(rdb *redis.Client, logger *zap.Logger) *Availability {
	return &Availability{rdb: rdb, logger: logger}
}

func (c *Availability) key(date string) string {
	return "availability:" + date
}

func (c *Availability) Get(ctx context.Context, date string) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.key(date)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("availability cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *Availability) Set(ctx context.Context, date string, slots []string) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, c.key(date), raw, availabilityTTL).Err(); err != nil {
		c.logger.Debug("availability cache write failed", zap.Error(err))
	}
}

// Invalidate remove a entrada da data após qualquer mutação de reserva
// ou bloqueio.
func (c *Availability) Invalidate(ctx context.Context, date string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, c.key(date)).Err(); err != nil {
		c.logger.Debug("availability cache invalidate failed", zap.Error(err))
	}
}
