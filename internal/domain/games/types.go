package games

// Outcome es el resultado que reporta el minijuego ya terminado.
// @Enum win, lose, draw
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
)

func (o Outcome) valid() bool {
	switch o {
	case OutcomeWin, OutcomeLose, OutcomeDraw:
		return true
	}
	return false
}

// GameType identifica el minijuego. El contenido del juego vive en la capa
// de comandos; acá solo importa para el historial.
type GameType string

const (
	GameGuess  GameType = "guess"
	GameRace   GameType = "race"
	GameMemory GameType = "memory"
)
