package tasks

import (
	"sync"

	"pet-care-tasks/internal/ports/remote"
)

// Store es la copia local autoritativa de los recordatorios de una sesión.
// Se construye por sesión y se pasa por referencia; no es un singleton.
//
// Cada escritura arma un slice nuevo y lo asigna de una vez: ningún lector
// ve una colección a medio reemplazar. Los slices publicados no se mutan.
type Store struct {
	mu    sync.RWMutex
	items []remote.Reminder
	gen   uint64
}

func NewStore() *Store {
	return &Store{items: []remote.Reminder{}}
}

// ReplaceAll reemplaza la colección completa (sin merge por campo).
// Si el servidor repite un id, gana la primera aparición.
func (s *Store) ReplaceAll(entities []remote.Reminder) {
	next := make([]remote.Reminder, 0, len(entities))
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		next = append(next, cloneReminder(e))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = next
	s.gen++
}

// ApplyLocalStatusChange devuelve una colección nueva donde solo cambia el
// status de id. Si id no está, devuelve la colección actual y false.
func (s *Store) ApplyLocalStatusChange(id string, status remote.Status) ([]remote.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return s.items, false
	}

	next := make([]remote.Reminder, len(s.items))
	copy(next, s.items)
	next[idx].Status = status

	s.items = next
	s.gen++
	return next, true
}

// Snapshot devuelve la colección vigente. No se debe modificar.
func (s *Store) Snapshot() []remote.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

func (s *Store) Get(id string) (remote.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return remote.Reminder{}, false
	}
	return s.items[idx], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Generation cuenta los swaps aplicados (refresh u optimistas).
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Reset vacía el store al cerrar sesión.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []remote.Reminder{}
	s.gen++
}

// indexOf compara ids tal cual: son opacos, no se normalizan.
func indexOf(items []remote.Reminder, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneReminder copia los campos por referencia para que el caller no
// pueda mutar lo que quedó en el store.
func cloneReminder(r remote.Reminder) remote.Reminder {
	out := r
	if r.PetID != nil {
		v := *r.PetID
		out.PetID = &v
	}
	out.ScheduledAt = cloneTS(r.ScheduledAt)
	out.DueAt = cloneTS(r.DueAt)
	out.SnoozeUntil = cloneTS(r.SnoozeUntil)
	out.CreatedAt = cloneTS(r.CreatedAt)
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	return out
}

func cloneTS(ts *remote.Timestamp) *remote.Timestamp {
	if ts == nil {
		return nil
	}
	v := *ts
	return &v
}
