package games

import "time"

// GameSession es el registro inmutable de un minijuego jugado: se escribe
// una vez y no se vuelve a tocar (historial/auditoría).
type GameSession struct {
	ID    string
	PetID string

	GameType GameType
	Outcome  Outcome

	ExperienceGained int
	CoinsGained      int

	PlayedAt time.Time
}
