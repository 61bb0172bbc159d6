package games

import "pixel-pet/internal/domain/pets"

// Tabla determinística de recompensas. La experiencia es fija por
// resultado; las monedas escalan con la etapa (una mascota adulta gana
// partidas que pagan mejor).
const (
	winExperience  = 20
	drawExperience = 10
	loseExperience = 5

	winCoinsBase  = 15
	drawCoinsBase = 5
	loseCoins     = 2
)

type Reward struct {
	Experience int
	Coins      int
}

// Resolve convierte el resultado del minijuego en el delta de
// experiencia/monedas. No toca stats de cuidado: ese camino es de las
// acciones, no de las recompensas.
func Resolve(outcome Outcome, stage pets.Stage) Reward {
	idx := stage.Index()
	switch outcome {
	case OutcomeWin:
		return Reward{Experience: winExperience, Coins: winCoinsBase + 2*idx}
	case OutcomeDraw:
		return Reward{Experience: drawExperience, Coins: drawCoinsBase + idx}
	default:
		return Reward{Experience: loseExperience, Coins: loseCoins}
	}
}
