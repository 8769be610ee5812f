// Package cache implementa el caché versionado del tablero de stock sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/analytics"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

var (
	_ analytics.DashboardCache = (*Cache)(nil)
	_ inventory.StockNotifier  = (*Cache)(nil)
)

const (
	versionKey  = "stock:version"
	bumpChannel = "stock.bump"
)

// Cache guarda JSON en Redis bajo claves que incluyen la versión global.
// Un Cache nil o sin cliente delega directo al loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New construye el caché. log puede ser nil.
func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

// Version devuelve la versión actual; la inicializa en 1 si no existe.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, fmt.Errorf("cache: init version: %w", err)
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, fmt.Errorf("cache: version: %w", err)
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, versionKey, ver, 0).Err(); err != nil {
			return 0, fmt.Errorf("cache: reset version: %w", err)
		}
	}
	return ver, nil
}

// BuildKey arma la clave con la versión vigente al final.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON lee la clave o la puebla con loader. Un fallo de Redis al leer o escribir
// no rompe la consulta: se registra y se sirve el valor del loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	if c != nil && c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("cache: lectura fallida")
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: serializar: %w", err)
	}
	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache: escritura fallida")
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalida todas las claves incrementando la versión y publica el nuevo valor.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return fmt.Errorf("cache: bump: %w", err)
	}
	return c.client.Publish(ctx, bumpChannel, strconv.FormatInt(ver, 10)).Err()
}

// StockChanged se llama después de cada commit que mueve stock.
func (c *Cache) StockChanged(ctx context.Context) {
	if err := c.Bump(ctx); err != nil {
		c.log.Warn().Err(err).Msg("cache: no se pudo invalidar el tablero")
	}
}

// Ping verifica la conexión con Redis.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
