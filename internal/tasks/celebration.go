package tasks

import "sync"

// CelebrationState es el estado explícito del controlador.
type CelebrationState int

const (
	// StateCooldown: ya se celebró (o nunca hubo pendientes); espera una
	// observación no vacía para rearmarse.
	StateCooldown CelebrationState = iota
	// StateArmed: la próxima observación vacía dispara.
	StateArmed
	// StateFiring: el efecto está en curso; las observaciones vacías no disparan.
	StateFiring
)

func (s CelebrationState) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateFiring:
		return "firing"
	default:
		return "cooldown"
	}
}

// CelebrationController dispara el efecto una sola vez por transición del
// conjunto pending-with-time de no vacío a vacío.
//
// Una observación no vacía rearma siempre, también durante Firing. Por eso al
// terminar el efecto se pasa a Cooldown: si seguía vacío no se vuelve a
// disparar hasta que reaparezca un pendiente, y si no, ya quedó Armed.
type CelebrationController struct {
	mu     sync.Mutex
	state  CelebrationState
	hidden bool
}

// NewCelebrationController arranca en cooldown: un día que empieza sin
// pendientes no celebra.
func NewCelebrationController() *CelebrationController {
	return &CelebrationController{state: StateCooldown}
}

func (c *CelebrationController) State() CelebrationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetVisible recibe la visibilidad de la pantalla. Oculta = suprimida.
func (c *CelebrationController) SetVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hidden = !visible
}

// Observe procesa una proyección nueva. Devuelve true solo cuando hay que
// arrancar la celebración. suppress evita disparar en un ciclo cuya
// decisión ya se tomó (p.ej. el refresh posterior a un toggle).
func (c *CelebrationController) Observe(pendingCount int, suppress bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pendingCount > 0 {
		c.state = StateArmed
		return false
	}

	if c.state != StateArmed || suppress || c.hidden {
		return false
	}
	c.state = StateFiring
	return true
}

// EffectDone lo llama la capa de vista cuando termina la animación.
// Solo actúa en Firing, que implica que la última observación fue vacía.
func (c *CelebrationController) EffectDone() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateFiring {
		c.state = StateCooldown
	}
}

// Reset vuelve al estado inicial (cierre de sesión).
func (c *CelebrationController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateCooldown
}
