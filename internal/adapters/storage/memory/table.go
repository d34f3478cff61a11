package memory

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	errIDRequired  = errors.New("id required")
	errDuplicateID = errors.New("duplicate id")
)

// table es un map protegido por RWMutex. Copia al guardar y al leer, así el caller
// no comparte slices con lo almacenado.
type table[T any] struct {
	mu       sync.RWMutex
	rows     map[string]T
	clone    func(T) T
	notFound error
}

func newTable[T any](clone func(T) T, notFound error) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{rows: make(map[string]T), clone: clone, notFound: notFound}
}

func (t *table[T]) insert(id string, v T) error {
	if strings.TrimSpace(id) == "" {
		return errIDRequired
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; exists {
		return errDuplicateID
	}
	t.rows[id] = t.clone(v)
	return nil
}

func (t *table[T]) replace(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; !exists {
		return t.notFound
	}
	t.rows[id] = t.clone(v)
	return nil
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, t.notFound
	}
	return t.clone(v), nil
}

// list filtra con keep y ordena por created_at asc, id como desempate
// (mismo orden que los repos de Postgres).
func (t *table[T]) list(keep func(T) bool, key func(T) (time.Time, string)) []T {
	t.mu.RLock()
	out := make([]T, 0)
	for _, v := range t.rows {
		if keep(v) {
			out = append(out, t.clone(v))
		}
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, idi := key(out[i])
		tj, idj := key(out[j])
		if ti.Equal(tj) {
			return idi < idj
		}
		return ti.Before(tj)
	})
	return out
}
