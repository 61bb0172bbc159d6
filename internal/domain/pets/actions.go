package pets

import "time"

// Cooldowns mínimos entre acciones idénticas, anclados a los timestamps
// last_* del registro. Violarlos es error, no efecto parcial.
const (
	FeedCooldown       = 30 * time.Minute
	PlayCooldown       = 15 * time.Minute
	CleanCooldown      = time.Hour
	DisciplineCooldown = time.Hour
)

// Efectos de cada acción, en puntos. Tabla fija; el clamp a [0,100] lo
// pone el stat model.
const (
	feedHungerGain        = 30.0
	feedHungerGainPremium = 50.0
	feedEnergyGain        = 5.0

	playHappinessGain = 25.0
	playEnergyCost    = 10.0
	playHungerCost    = 5.0

	cleanGain = 60.0

	disciplineGain          = 15.0
	disciplineHappinessCost = 5.0
	// Con la disciplina por encima de esto, la sesión "descuenta" un care
	// mistake en lugar de sumar entrenamiento.
	disciplineImprovedAt = 70.0

	medicineHealthGain = 20.0
)

// PremiumFoodItem es el ítem de inventario que mejora la comida básica.
// La comida básica no consume inventario.
const (
	PremiumFoodItem = "premium_food"
	MedicineItem    = "medicine"
)

// actionResult es lo que devuelve el procesador: el estado nuevo más los
// eventos propios de la acción (los de ciclo de vida salen del pase
// posterior de checkTransitions).
type actionResult struct {
	pet    Pet
	events []string
}

// applyAction aplica una acción discreta sobre un estado YA reconciliado.
// premium indica que el servicio consumió el ítem correspondiente del
// inventario (feed premium / medicina).
func applyAction(p Pet, kind ActionKind, now time.Time, premium bool) (actionResult, error) {
	if p.Expired() {
		return actionResult{}, ErrInvalidState
	}

	// Acciones incompatibles con el sueño.
	if p.IsSleeping {
		switch kind {
		case ActionFeed, ActionPlay, ActionClean, ActionDiscipline:
			return actionResult{}, ErrPetAsleep
		}
	}

	switch kind {
	case ActionFeed:
		if cooldownActive(p.LastFed, now, FeedCooldown) {
			return actionResult{}, ErrCooldownActive
		}
		gain := feedHungerGain
		if premium {
			gain = feedHungerGainPremium
		}
		p.Hunger = clampStat(p.Hunger + gain)
		p.Energy = clampStat(p.Energy + feedEnergyGain)
		p.LastFed = now
		return actionResult{pet: p}, nil

	case ActionPlay:
		if cooldownActive(p.LastPlayed, now, PlayCooldown) {
			return actionResult{}, ErrCooldownActive
		}
		p.Happiness = clampStat(p.Happiness + playHappinessGain)
		p.Energy = clampStat(p.Energy - playEnergyCost)
		p.Hunger = clampStat(p.Hunger - playHungerCost)
		p.LastPlayed = now
		return actionResult{pet: p}, nil

	case ActionClean:
		if cooldownActive(p.LastCleaned, now, CleanCooldown) {
			return actionResult{}, ErrCooldownActive
		}
		p.Cleanliness = clampStat(p.Cleanliness + cleanGain)
		p.LastCleaned = now
		return actionResult{pet: p}, nil

	case ActionDiscipline:
		if cooldownActive(p.LastDisciplined, now, DisciplineCooldown) {
			return actionResult{}, ErrCooldownActive
		}
		p.Discipline = clampStat(p.Discipline + disciplineGain)
		p.Happiness = clampStat(p.Happiness - disciplineHappinessCost)
		if p.Discipline >= disciplineImprovedAt && p.CareMistakes > 0 {
			p.CareMistakes--
		} else {
			p.TrainingSessions++
		}
		p.LastDisciplined = now
		return actionResult{pet: p}, nil

	case ActionMedicine:
		// El consumo del ítem ya lo validó el servicio (premium=true).
		if !premium {
			return actionResult{}, ErrInsufficientResource
		}
		var events []string
		if p.IsSick {
			p.IsSick = false
			events = append(events, EventRecovered)
		}
		p.Health = clampStat(p.Health + medicineHealthGain)
		return actionResult{pet: p, events: events}, nil

	case ActionSleep:
		if p.IsSleeping {
			return actionResult{pet: p}, nil // ya duerme; idempotente
		}
		p.IsSleeping = true
		t := now
		p.SleepStart = &t
		return actionResult{pet: p, events: []string{EventFellAsleep}}, nil

	case ActionWake:
		if !p.IsSleeping {
			return actionResult{pet: p}, nil
		}
		if p.Energy <= 0 {
			// Energía en 0 fuerza el sueño, gane quien gane la discusión.
			return actionResult{}, ErrInvalidState
		}
		p.IsSleeping = false
		p.SleepStart = nil
		return actionResult{pet: p, events: []string{EventWokeUp}}, nil

	default:
		return actionResult{}, ErrInvalidInput
	}
}

func cooldownActive(last, now time.Time, cooldown time.Duration) bool {
	if last.IsZero() {
		return false
	}
	return now.Sub(last) < cooldown
}
