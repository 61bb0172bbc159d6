package pets

import "errors"

// Errores de dominio. Todos recuperables por el caller; los handlers los
// mapean a status HTTP.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")

	// ErrAlreadyExists: un usuario tiene a lo sumo una mascota viva.
	ErrAlreadyExists = errors.New("user already has an active pet")

	// ErrInvalidState: la acción no aplica al estado actual del ciclo de
	// vida (p.ej. alimentar una mascota expirada).
	ErrInvalidState = errors.New("action not allowed in current state")

	// ErrPetAsleep: acción incompatible con el sueño.
	ErrPetAsleep = errors.New("pet is asleep")

	// ErrCooldownActive: se reintentó la misma acción antes del intervalo
	// mínimo. Sin efecto parcial.
	ErrCooldownActive = errors.New("action cooldown active")

	// ErrInsufficientResource: falta el ítem requerido en el inventario.
	ErrInsufficientResource = errors.New("required item not available")

	// ErrConflict: carrera de escritura detectada al guardar. El caller
	// reintenta la secuencia completa desde un load fresco.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrCorruptState: un stat fuera de [0,100] al cargar es corrupción de
	// datos, se reporta distinto de los errores de usuario y jamás se
	// clampa en silencio.
	ErrCorruptState = errors.New("pet record corrupted")

	// ErrNotExpired: el reset solo aplica sobre una mascota expirada.
	ErrNotExpired = errors.New("pet is still alive")
)
