package race

// InputSnapshot is the read-only per-tick input contract spec.md §6
// defines: level-triggered controls for everything but pauseToggle,
// which the caller must edge-trigger itself before handing it to Tick.
type InputSnapshot struct {
	Accelerate bool
	Brake      bool
	SteerLeft  bool
	SteerRight bool
	// UseItem fires a held hazard/self-effect item immediately, or
	// releases a held projectile when FireForward is also set this
	// tick; a projectile held with UseItem alone stays in inventory.
	UseItem     bool
	FireForward bool
	PauseToggle bool
}

// SteerRate is the per-tick angle delta applied while a steer control is
// held.
const SteerRate = 8
