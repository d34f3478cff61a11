package tasks

import (
	"context"
	"sync"
	"time"

	"pet-care-tasks/internal/platform/logger"
	"pet-care-tasks/internal/ports/remote"
)

type Options struct {
	Logger      logger.Logger
	Now         func() time.Time
	Celebration *CelebrationController

	// OnChange recibe cada proyección publicada (optimista o confirmada), en
	// orden. No debe volver a llamar a ToggleCompletion/Refresh desde adentro.
	OnChange func(Projection)
	// OnCelebrate se llama una vez por cada disparo del controlador.
	OnCelebrate func()
}

// Engine orquesta store, proyección, celebración y el colaborador remoto
// para una pantalla. Toda mutación local es sincrónica; solo las llamadas
// al gateway pueden bloquear.
type Engine struct {
	store   *Store
	gateway remote.ReminderGateway
	cel     *CelebrationController
	log     logger.Logger
	now     func() time.Time

	onChange    func(Projection)
	onCelebrate func()

	// publishMu serializa proyectar + observar + guardar current.
	publishMu sync.Mutex
	current   Projection
	seq       uint64

	// deliverMu ordena las entregas a onChange; una proyección más vieja
	// que la última entregada se descarta.
	deliverMu sync.Mutex
	delivered uint64
}

func NewEngine(store *Store, gateway remote.ReminderGateway, opts Options) *Engine {
	if store == nil {
		store = NewStore()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cel := opts.Celebration
	if cel == nil {
		cel = NewCelebrationController()
	}

	e := &Engine{
		store:       store,
		gateway:     gateway,
		cel:         cel,
		log:         log.With(map[string]any{"component": "tasks.engine"}),
		now:         now,
		onChange:    opts.OnChange,
		onCelebrate: opts.OnCelebrate,
	}
	e.current = Project(store.Snapshot(), now())
	return e
}

func (e *Engine) Store() *Store { return e.store }

func (e *Engine) Celebration() *CelebrationController { return e.cel }

// Projection devuelve la última proyección publicada.
func (e *Engine) Projection() Projection {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	return e.current
}

// SetVisible: con la pantalla oculta los resultados se aplican igual pero
// la celebración queda suprimida.
func (e *Engine) SetVisible(visible bool) {
	e.cel.SetVisible(visible)
}

// EffectDone reenvía el fin del efecto al controlador.
func (e *Engine) EffectDone() {
	e.cel.EffectDone()
}

// Refresh trae los recordatorios de hoy y reemplaza el store.
func (e *Engine) Refresh(ctx context.Context) (Projection, error) {
	return e.refresh(ctx, false)
}

func (e *Engine) refresh(ctx context.Context, suppressCelebration bool) (Projection, error) {
	items, err := e.gateway.FetchToday(ctx)
	if err != nil {
		e.log.Warn("refresh failed", map[string]any{"error": err.Error()})
		return e.Projection(), &OperationError{
			Op:      "refresh",
			Kind:    ErrFetchFailed,
			Message: remote.ServerMessage(err),
			Err:     err,
		}
	}

	e.store.ReplaceAll(items)
	p := e.publish(suppressCelebration)

	e.log.Debug("refresh applied", map[string]any{
		"generation": e.store.Generation(),
		"items":      len(items),
		"pending":    p.PendingCount(),
	})
	return p, nil
}

// ToggleCompletion aplica el cambio local, lo publica, llama al remoto y
// siempre refresca al final. Si el remoto falla no hay rollback: el
// refresh es el único mecanismo de corrección.
func (e *Engine) ToggleCompletion(ctx context.Context, id string) (Projection, error) {
	current, ok := e.store.Get(id)
	if !ok {
		e.log.Debug("toggle ignored", map[string]any{"reminder_id": id, "reason": ErrNotFound.Error()})
		return e.Projection(), nil
	}
	if current.Status == remote.StatusArchived {
		e.log.Debug("toggle ignored", map[string]any{"reminder_id": id, "reason": "archived"})
		return e.Projection(), nil
	}

	target := remote.StatusCompleted
	if current.Status.Finished() {
		target = remote.StatusPending
	}

	e.store.ApplyLocalStatusChange(id, target)
	e.publish(false)

	var mutErr error
	if target == remote.StatusCompleted {
		_, mutErr = e.gateway.Complete(ctx, id)
	} else {
		_, mutErr = e.gateway.UpdateStatus(ctx, id, remote.StatusPending)
	}
	if mutErr != nil {
		e.log.Warn("toggle rejected", map[string]any{
			"reminder_id": id,
			"target":      string(target),
			"error":       mutErr.Error(),
		})
	}

	// La decisión de celebrar ya se tomó con la proyección optimista.
	p, fetchErr := e.refresh(ctx, true)

	if mutErr != nil {
		return p, &OperationError{
			Op:      "toggle",
			Kind:    ErrMutationFailed,
			ID:      id,
			Message: remote.ServerMessage(mutErr),
			Err:     mutErr,
		}
	}
	if fetchErr != nil {
		return p, fetchErr
	}

	e.log.Info("toggle confirmed", map[string]any{"reminder_id": id, "status": string(target)})
	return p, nil
}

// CreateReminder crea en remoto y refresca. Nada se inserta localmente.
func (e *Engine) CreateReminder(ctx context.Context, petID string, in remote.CreateReminderInput) (remote.Reminder, Projection, error) {
	created, err := e.gateway.Create(ctx, petID, in)
	if err != nil {
		return remote.Reminder{}, e.Projection(), &OperationError{
			Op:      "create",
			Kind:    ErrMutationFailed,
			Message: remote.ServerMessage(err),
			Err:     err,
		}
	}
	p, err := e.refresh(ctx, false)
	return created, p, err
}

// Reset tira el estado de la sesión (logout).
func (e *Engine) Reset() {
	e.store.Reset()
	e.cel.Reset()

	e.publishMu.Lock()
	e.current = Project(nil, e.now())
	e.seq++
	e.publishMu.Unlock()
}

func (e *Engine) publish(suppressCelebration bool) Projection {
	e.publishMu.Lock()
	p := Project(e.store.Snapshot(), e.now())
	fire := e.cel.Observe(p.PendingCount(), suppressCelebration)
	e.current = p
	e.seq++
	seq := e.seq
	e.publishMu.Unlock()

	e.deliver(seq, p)
	if fire {
		e.log.Info("all tasks done", map[string]any{"completed": len(p.Completed)})
		if e.onCelebrate != nil {
			e.onCelebrate()
		}
	}
	return p
}

func (e *Engine) deliver(seq uint64, p Projection) {
	e.deliverMu.Lock()
	defer e.deliverMu.Unlock()

	if seq <= e.delivered {
		return
	}
	e.delivered = seq
	if e.onChange != nil {
		e.onChange(p)
	}
}
