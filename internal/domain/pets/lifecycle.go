package pets

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Parámetros del ciclo de vida.
const (
	// IncubationTime es lo que tarda un huevo en eclosionar, pase lo que pase.
	IncubationTime = time.Hour

	// NeglectGrace: un stat de cuidado clavado en 0 más que esto cuenta
	// como care mistake y enferma a la mascota.
	NeglectGrace = 2 * time.Hour

	// Umbrales de enfermedad/recuperación sobre la salud.
	lowHealthThreshold = 30.0
	recoveryThreshold  = 70.0

	// Probabilidad (%) de enfermarse en un chequeo con salud baja.
	sicknessChancePct = 25

	// Bucket temporal del roll de enfermedad: reconciliar dos veces el
	// mismo intervalo tiene que dar el mismo resultado (idempotencia).
	sicknessBucket = time.Hour
)

// evolutionRule define el requisito para pasar a la siguiente etapa.
// Si no se cumple, la evolución se difiere (no falla) y se reintenta en
// cada reconciliación.
type evolutionRule struct {
	minLevel  int
	minHealth float64
}

var evolutionRules = map[Stage]evolutionRule{
	StageBaby:  {minLevel: 3, minHealth: 50},
	StageChild: {minLevel: 6, minHealth: 50},
	StageTeen:  {minLevel: 10, minHealth: 50},
}

// sicknessRoll es el chequeo pseudo-aleatorio de enfermedad, determinístico
// por (pet id, bucket de tiempo): nada de un RNG suelto, porque replays
// concurrentes del mismo intervalo no pueden divergir.
func sicknessRoll(petID string, now time.Time) bool {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", petID, now.Unix()/int64(sicknessBucket.Seconds()))
	return h.Sum64()%100 < sicknessChancePct
}

// checkTransitions corre las transiciones post-decay en orden fijo:
// muerte → enfermedad → evolución → incubación. Devuelve un evento por
// transición aceptada.
//
// rollSickness apaga el chequeo probabilístico (el pase post-acción no
// tira el dado; solo la reconciliación por tiempo lo hace).
func checkTransitions(p *Pet, now time.Time, floors floorTimes, rollSickness bool) []string {
	var events []string

	// 1. Muerte. Terminal: no se evalúa nada más.
	if p.Expired() {
		if p.Health < 0 {
			p.Health = 0
		}
		return append(events, EventDied)
	}

	// 2. Enfermedad / recuperación.
	if !p.IsSick {
		neglected := floors.longest() >= NeglectGrace
		if neglected {
			p.IsSick = true
			events = append(events, EventFellSick)
		} else if rollSickness && p.Health < lowHealthThreshold && sicknessRoll(p.ID, now) {
			p.IsSick = true
			events = append(events, EventFellSick)
		}
	} else if p.Health >= recoveryThreshold {
		// Recuperación por buen cuidado sostenido: la salud volvió a subir
		// por encima del umbral sin medicina.
		p.IsSick = false
		events = append(events, EventRecovered)
	}

	// 3. Evolución por nivel+salud. Puede encadenar etapas si un salto de
	// experiencia cruzó más de un umbral.
	for {
		rule, ok := evolutionRules[p.Stage]
		if !ok {
			break
		}
		if p.Level < rule.minLevel || p.Health < rule.minHealth {
			break
		}
		next, ok := p.Stage.next()
		if !ok {
			break
		}
		p.Stage = next
		events = append(events, evolvedEvent(next))
	}

	// 4. Incubación: el huevo eclosiona solo, independiente del cuidado.
	if p.Stage == StageEgg && now.Sub(p.BirthTime) >= IncubationTime {
		p.Stage = StageBaby
		events = append(events, EventHatched)
	}

	return events
}
