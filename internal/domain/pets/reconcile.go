package pets

import "time"

// Reconcile reemplaza al tick loop: replay perezoso del decay pendiente y
// de las transiciones de ciclo de vida hasta now. Es el único punto de
// entrada antes de cualquier lectura o acción sobre la mascota.
//
// Propiedades que cuidan los tests:
//   - idempotente: Reconcile(Reconcile(p, t), t) == Reconcile(p, t)
//   - sin viajes en el tiempo: now anterior a LastUpdate es un no-op
//   - forma cerrada: una llamada tras 10h da lo mismo que diez tras 1h
func Reconcile(p Pet, now time.Time) (Pet, []string) {
	// Un registro expirado queda congelado tal cual murió.
	if p.Expired() {
		return p, nil
	}

	elapsed := now.Sub(p.LastUpdate)
	if elapsed <= 0 {
		return p, nil
	}

	var events []string
	var floors floorTimes

	if p.IsSleeping {
		// Dormida todo el intervalo: despertar es acción explícita y ya
		// habría reconciliado en ese instante.
		floors = decayPhase(&p, elapsed, true)
	} else {
		// Despierta, pero si la energía toca 0 a mitad del intervalo se
		// fuerza el sueño ahí: partimos el intervalo en ese límite en vez
		// de aplicar el estado final a todo el tramo.
		toFloor := timeToEnergyFloor(p.Energy)
		if toFloor < elapsed {
			floors = decayPhase(&p, toFloor, false)

			p.IsSleeping = true
			sleepAt := p.LastUpdate.Add(toFloor)
			p.SleepStart = &sleepAt
			events = append(events, EventFellAsleep)

			rest := decayPhase(&p, elapsed-toFloor, true)
			floors.add(rest)
		} else {
			floors = decayPhase(&p, elapsed, false)
		}
	}

	// Care mistakes: una ventana perdida por stat y por reconciliación,
	// nunca por acción.
	for _, fw := range []struct {
		name string
		at   time.Duration
	}{
		{"hunger", floors.hunger},
		{"happiness", floors.happiness},
		{"cleanliness", floors.cleanliness},
	} {
		if fw.at >= NeglectGrace {
			p.CareMistakes++
			events = append(events, careMistakeEvent(fw.name))
		}
	}

	events = append(events, checkTransitions(&p, now, floors, true)...)

	p.LastUpdate = now
	return p, events
}
