package pets

// Stage define la etapa evolutiva de la mascota.
// @Enum egg, baby, child, teen, adult
type Stage string

const (
	StageEgg   Stage = "egg"
	StageBaby  Stage = "baby"
	StageChild Stage = "child"
	StageTeen  Stage = "teen"
	StageAdult Stage = "adult"
)

// stageOrder fija el orden de evolución. Las etapas nunca retroceden.
var stageOrder = []Stage{StageEgg, StageBaby, StageChild, StageTeen, StageAdult}

// Index devuelve la posición de la etapa (egg=0 .. adult=4).
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return 0
}

func (s Stage) next() (Stage, bool) {
	i := s.Index()
	if i >= len(stageOrder)-1 {
		return s, false
	}
	return stageOrder[i+1], true
}

// ActionKind define las acciones de cuidado que expone el bot.
// @Enum feed, play, clean, discipline, medicine, sleep, wake
type ActionKind string

const (
	ActionFeed       ActionKind = "feed"
	ActionPlay       ActionKind = "play"
	ActionClean      ActionKind = "clean"
	ActionDiscipline ActionKind = "discipline"
	ActionMedicine   ActionKind = "medicine"
	ActionSleep      ActionKind = "sleep"
	ActionWake       ActionKind = "wake"
)

// Eventos de ciclo de vida que se devuelven al caller para renderizar.
// Ninguna transición aceptada es silenciosa.
const (
	EventHatched      = "hatched"
	EventEvolvedChild = "evolved:child"
	EventEvolvedTeen  = "evolved:teen"
	EventEvolvedAdult = "evolved:adult"
	EventFellSick     = "fell_sick"
	EventRecovered    = "recovered"
	EventFellAsleep   = "fell_asleep"
	EventWokeUp       = "woke_up"
	EventDied         = "died"
)

func evolvedEvent(s Stage) string {
	switch s {
	case StageBaby:
		return EventHatched
	case StageChild:
		return EventEvolvedChild
	case StageTeen:
		return EventEvolvedTeen
	case StageAdult:
		return EventEvolvedAdult
	default:
		return "evolved:" + string(s)
	}
}

// careMistakeEvent marca una ventana de cuidado perdida sobre un stat.
func careMistakeEvent(stat string) string {
	return "care_mistake:" + stat
}
