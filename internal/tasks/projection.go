package tasks

import (
	"time"

	"pet-care-tasks/internal/ports/remote"
)

// TaskView es la proyección de un Reminder para un ciclo de cómputo.
// Se arma una vez por proyección y no se muta.
type TaskView struct {
	ID        string
	Title     string
	Time      string // "15:04" o vacío
	Completed bool
	Icon      Icon
	Priority  remote.Priority
	PetID     *string

	SortInstant *time.Time // nil si no hay timestamp parseable
}

// HasInstant indica si la vista tiene un instante válido para ordenar.
func (v TaskView) HasInstant() bool {
	return v.SortInstant != nil
}

type PetStats struct {
	Total     int
	Completed int
	NextTask  *TaskView
}

// Projection agrupa todas las vistas derivadas del store en un instante.
type Projection struct {
	At time.Time

	Incomplete []TaskView
	Completed  []TaskView

	// PendingWithTime son las no terminadas con instante parseable.
	// Maneja NextUp y la celebración.
	PendingWithTime []TaskView

	NextUp     *TaskView
	StatsByPet map[string]PetStats
}

func (p Projection) PendingCount() int {
	return len(p.PendingWithTime)
}

// Project es puro: no lee reloj ni estado externo además de sus argumentos.
// Los archivados se descartan antes de proyectar.
func Project(entities []remote.Reminder, now time.Time) Projection {
	out := Projection{
		At:              now,
		Incomplete:      make([]TaskView, 0, len(entities)),
		Completed:       make([]TaskView, 0),
		PendingWithTime: make([]TaskView, 0, len(entities)),
		StatsByPet:      make(map[string]PetStats),
	}

	for _, e := range entities {
		if e.Status == remote.StatusArchived {
			continue
		}
		v := toTaskView(e, now)

		if v.Completed {
			out.Completed = append(out.Completed, v)
		} else {
			out.Incomplete = append(out.Incomplete, v)
			// Las vencidas siguen pendientes a propósito: no se filtra por now.
			if v.HasInstant() {
				out.PendingWithTime = append(out.PendingWithTime, v)
			}
		}

		if v.PetID != nil {
			foldPetStats(out.StatsByPet, v)
		}
	}

	out.NextUp = earliest(out.PendingWithTime)
	return out
}

// Overdue es relativo al momento en que se invoca; no se guarda en la vista.
func Overdue(v TaskView, now time.Time) bool {
	if v.Completed || v.SortInstant == nil {
		return false
	}
	return v.SortInstant.Before(now)
}

func toTaskView(e remote.Reminder, now time.Time) TaskView {
	v := TaskView{
		ID:        e.ID,
		Title:     e.Title,
		Completed: e.Status.Finished(),
		Icon:      IconFor(e.FirstTag()),
		Priority:  e.Priority,
	}
	if e.PetID != nil {
		id := *e.PetID
		v.PetID = &id
	}
	if ts, ok := e.ChosenTime(); ok {
		if t, ok := ts.Instant(now); ok {
			local := t.In(now.Location())
			v.SortInstant = &local
			v.Time = local.Format("15:04")
		}
	}
	return v
}

func foldPetStats(stats map[string]PetStats, v TaskView) {
	ps := stats[*v.PetID]
	ps.Total++
	switch {
	case v.Completed:
		ps.Completed++
	case v.SortInstant == nil:
		// cuenta en total pero no compite por nextTask
	case ps.NextTask == nil || v.SortInstant.Before(*ps.NextTask.SortInstant):
		nv := v
		ps.NextTask = &nv
	}
	stats[*v.PetID] = ps
}

// earliest devuelve la de menor instante; en empate gana la primera vista.
func earliest(views []TaskView) *TaskView {
	var best *TaskView
	for i := range views {
		if views[i].SortInstant == nil {
			continue
		}
		if best == nil || views[i].SortInstant.Before(*best.SortInstant) {
			best = &views[i]
		}
	}
	if best == nil {
		return nil
	}
	nv := *best
	return &nv
}
