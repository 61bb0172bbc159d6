package pets

import "time"

// Tasas de decay en puntos por hora. El decay se calcula en forma cerrada
// sobre el tiempo transcurrido (nada de simular tick a tick): reconciliar
// después de una ausencia larga cuesta O(1).
const (
	hungerRateAwake      = 8.0
	happinessRateAwake   = 6.0
	cleanlinessRateAwake = 4.0
	energyRateAwake      = 5.0
	disciplineRateAwake  = 0.5

	hungerRateAsleep      = 2.0
	happinessRateAsleep   = 1.5
	cleanlinessRateAsleep = 1.0
	energyRegenAsleep     = 20.0 // dormir regenera energía

	// La salud nunca decae directo: solo por abandono (algún stat en 0)
	// o mientras la mascota está enferma.
	healthNeglectRate = 5.0
	healthSickRate    = 3.0
)

func clampStat(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// applyDecay devuelve el valor de un stat después de elapsed, con la tasa
// horaria dada. rate > 0 decae, rate < 0 regenera (energía dormida).
// Monótona en elapsed e identidad en elapsed=0.
func applyDecay(stat float64, elapsed time.Duration, ratePerHour float64) float64 {
	if elapsed <= 0 {
		return stat
	}
	return clampStat(stat - ratePerHour*elapsed.Hours())
}

// timeAtFloor calcula cuánto del intervalo pasó con el stat clavado en 0.
// Dentro de una reconciliación el stat solo baja, así que el tramo en 0
// es siempre un sufijo del intervalo.
func timeAtFloor(stat float64, elapsed time.Duration, ratePerHour float64) time.Duration {
	if elapsed <= 0 || ratePerHour <= 0 {
		return 0
	}
	if stat <= 0 {
		return elapsed
	}
	toFloor := time.Duration(stat / ratePerHour * float64(time.Hour))
	if toFloor >= elapsed {
		return 0
	}
	return elapsed - toFloor
}

// floorTimes acumula, por stat de cuidado, el tiempo pasado en 0 durante
// la reconciliación. Alimenta el conteo de care mistakes y el decay de
// salud por abandono.
type floorTimes struct {
	hunger      time.Duration
	happiness   time.Duration
	cleanliness time.Duration
}

// longest devuelve el tramo de abandono más largo. Como los tramos en 0
// son sufijos del mismo intervalo, el máximo equivale a la unión exacta.
func (f floorTimes) longest() time.Duration {
	max := f.hunger
	if f.happiness > max {
		max = f.happiness
	}
	if f.cleanliness > max {
		max = f.cleanliness
	}
	return max
}

// decayPhase aplica un tramo de decay uniforme (sin transición de sueño en
// el medio) y devuelve los tiempos en piso del tramo.
func decayPhase(p *Pet, elapsed time.Duration, sleeping bool) floorTimes {
	if elapsed <= 0 {
		return floorTimes{}
	}

	var ft floorTimes
	if sleeping {
		ft.hunger = timeAtFloor(p.Hunger, elapsed, hungerRateAsleep)
		ft.happiness = timeAtFloor(p.Happiness, elapsed, happinessRateAsleep)
		ft.cleanliness = timeAtFloor(p.Cleanliness, elapsed, cleanlinessRateAsleep)

		p.Hunger = applyDecay(p.Hunger, elapsed, hungerRateAsleep)
		p.Happiness = applyDecay(p.Happiness, elapsed, happinessRateAsleep)
		p.Cleanliness = applyDecay(p.Cleanliness, elapsed, cleanlinessRateAsleep)
		p.Energy = applyDecay(p.Energy, elapsed, -energyRegenAsleep)
		// La disciplina no se mueve mientras duerme.
	} else {
		ft.hunger = timeAtFloor(p.Hunger, elapsed, hungerRateAwake)
		ft.happiness = timeAtFloor(p.Happiness, elapsed, happinessRateAwake)
		ft.cleanliness = timeAtFloor(p.Cleanliness, elapsed, cleanlinessRateAwake)

		p.Hunger = applyDecay(p.Hunger, elapsed, hungerRateAwake)
		p.Happiness = applyDecay(p.Happiness, elapsed, happinessRateAwake)
		p.Cleanliness = applyDecay(p.Cleanliness, elapsed, cleanlinessRateAwake)
		p.Energy = applyDecay(p.Energy, elapsed, energyRateAwake)
		p.Discipline = applyDecay(p.Discipline, elapsed, disciplineRateAwake)
	}

	// Salud: indirecta. Abandono mientras algún stat de cuidado está en 0,
	// más el drenaje constante si está enferma durante el tramo.
	neglect := ft.longest()
	loss := healthNeglectRate * neglect.Hours()
	if p.IsSick {
		loss += healthSickRate * elapsed.Hours()
	}
	if loss > 0 {
		p.Health = clampStat(p.Health - loss)
	}

	return ft
}

// timeToEnergyFloor devuelve cuánto falta, despierta, para que la energía
// llegue a 0 (momento en que se fuerza el sueño).
func timeToEnergyFloor(energy float64) time.Duration {
	if energy <= 0 {
		return 0
	}
	return time.Duration(energy / energyRateAwake * float64(time.Hour))
}

func (f *floorTimes) add(other floorTimes) {
	f.hunger += other.hunger
	f.happiness += other.happiness
	f.cleanliness += other.cleanliness
}
