// Package carousel mantiene el índice seleccionado del carrusel de mascotas
// en acuerdo con el índice que maneja el dueño externo de la selección.
package carousel

import "sync"

// ItemCountForPets: una tarjeta por mascota más el slot final "agregar mascota".
func ItemCountForPets(petCount int) int {
	if petCount < 0 {
		petCount = 0
	}
	return petCount + 1
}

// Sync reconcilia el índice interno (flechas, paginación) con el externo.
// Ante conflicto gana el externo.
type Sync struct {
	mu        sync.Mutex
	count     int
	current   int
	lastOwner int
	notify    func(int)
}

// New crea el sync. notify puede ser nil.
func New(itemCount int, notify func(int)) *Sync {
	if itemCount < 1 {
		itemCount = 1
	}
	return &Sync{count: itemCount, notify: notify}
}

func (s *Sync) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Sync) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// IsAddSlot indica si i es el slot sintético del final.
func (s *Sync) IsAddSlot(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i == s.count-1
}

// GoTo mueve el índice por interacción directa. Solo avisa al dueño si el
// valor final difiere del último que él informó.
func (s *Sync) GoTo(index int) int {
	s.mu.Lock()
	idx := clamp(index, s.count)
	s.current = idx
	changed := idx != s.lastOwner
	if changed {
		s.lastOwner = idx
	}
	notify := s.notify
	s.mu.Unlock()

	if changed && notify != nil {
		notify(idx)
	}
	return idx
}

// Next y Prev son los atajos de las flechas.
func (s *Sync) Next() int { return s.GoTo(s.CurrentIndex() + 1) }
func (s *Sync) Prev() int { return s.GoTo(s.CurrentIndex() - 1) }

// SetExternal aplica un índice decidido por el dueño. No notifica.
func (s *Sync) SetExternal(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := clamp(index, s.count)
	s.current = idx
	s.lastOwner = idx
	return idx
}

// SetItemCount ajusta la cantidad (p.ej. al cambiar el directorio) y re-clampa.
func (s *Sync) SetItemCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 {
		n = 1
	}
	s.count = n
	s.current = clamp(s.current, n)
}

func clamp(i, count int) int {
	if i < 0 {
		return 0
	}
	if i > count-1 {
		return count - 1
	}
	return i
}
