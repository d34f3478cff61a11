// Package diskcache guarda en disco la última lista de recordatorios traída
// del servidor. Solo se usa para mostrar una copia offline; nunca entra al
// store de la sesión.
package diskcache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"pet-care-tasks/internal/platform/logger"
	"pet-care-tasks/internal/ports/remote"
)

var (
	ErrEmpty = errors.New("diskcache: no snapshot stored")
)

const snapshotKey = "today"

type snapshot struct {
	SavedAt   time.Time         `json:"saved_at"`
	UserID    string            `json:"user_id"`
	Reminders []remote.Reminder `json:"reminders"`
}

// Cache es un snapshot por usuario sobre diskv.
type Cache struct {
	d      *diskv.Diskv
	userID string
	now    func() time.Time
}

func New(basePath, userID string) (*Cache, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("diskcache: base path required")
	}
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 512 * 1024,
		}),
		userID: strings.TrimSpace(userID),
		now:    time.Now,
	}, nil
}

func (c *Cache) key() string {
	if c.userID == "" {
		return snapshotKey
	}
	return snapshotKey + "-" + userKey(c.userID)
}

func (c *Cache) Save(ctx context.Context, items []remote.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(snapshot{
		SavedAt:   c.now(),
		UserID:    c.userID,
		Reminders: items,
	})
	if err != nil {
		return fmt.Errorf("diskcache: encode: %w", err)
	}
	return c.d.Write(c.key(), b)
}

// Load devuelve la copia guardada y cuándo se guardó.
func (c *Cache) Load() ([]remote.Reminder, time.Time, error) {
	b, err := c.d.Read(c.key())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, time.Time{}, ErrEmpty
		}
		return nil, time.Time{}, err
	}
	var s snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, time.Time{}, fmt.Errorf("diskcache: decode: %w", err)
	}
	return s.Reminders, s.SavedAt, nil
}

func (c *Cache) Clear() error {
	err := c.d.Erase(c.key())
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// userKey codifica el id en base64 url-safe: el resultado es un nombre de
// archivo válido y dos ids distintos nunca comparten clave.
func userKey(userID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(userID))
}

// CachingGateway guarda en disco cada FetchToday exitoso.
// El resto de las operaciones pasan directo.
type CachingGateway struct {
	remote.ReminderGateway
	cache *Cache
	log   logger.Logger
}

func NewCachingGateway(next remote.ReminderGateway, cache *Cache, log logger.Logger) *CachingGateway {
	if log == nil {
		log = logger.Nop()
	}
	return &CachingGateway{ReminderGateway: next, cache: cache, log: log}
}

func (g *CachingGateway) FetchToday(ctx context.Context) ([]remote.Reminder, error) {
	items, err := g.ReminderGateway.FetchToday(ctx)
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		if err := g.cache.Save(ctx, items); err != nil {
			// el cache es best-effort
			g.log.Warn("snapshot not cached", map[string]any{"error": err.Error()})
		}
	}
	return items, nil
}
