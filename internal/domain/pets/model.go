package pets

import "time"

// Valores por defecto al nacer. Documentados acá para que el reset
// y el create usen exactamente la misma cría.
const (
	DefaultHunger      = 80.0
	DefaultHappiness   = 80.0
	DefaultCleanliness = 100.0
	DefaultHealth      = 100.0
	DefaultEnergy      = 100.0
	DefaultDiscipline  = 50.0
)

// FatalCareMistakes es el umbral de abandono que mata a la mascota.
const FatalCareMistakes = 20

// StarterCoins con los que arranca cada huevo nuevo.
const StarterCoins = 50

// Pet es el registro central: mapea 1:1 con las columnas de la tabla pets
// (más version para optimistic locking a nivel de store).
type Pet struct {
	ID     string
	UserID string
	Name   string

	BirthTime  time.Time
	LastUpdate time.Time // última reconciliación aplicada
	SleepStart *time.Time

	// Anclas de cooldown por acción.
	LastFed         time.Time
	LastPlayed      time.Time
	LastCleaned     time.Time
	LastDisciplined time.Time

	// Stats core en [0,100]. Float internamente: el decay es una función
	// cerrada del tiempo transcurrido y redondear en cada reconciliación
	// haría que el resultado dependa de la frecuencia de llamadas.
	Hunger      float64
	Happiness   float64
	Cleanliness float64
	Health      float64
	Energy      float64
	Discipline  float64

	Stage      Stage
	Level      int
	Experience int

	IsSick     bool
	IsSleeping bool

	CareMistakes     int
	Coins            int
	GamesWon         int
	GamesLost        int
	TrainingSessions int

	Version int
}

// NewPet crea un huevo recién puesto con los defaults documentados.
func NewPet(id, userID, name string, now time.Time) Pet {
	return Pet{
		ID:     id,
		UserID: userID,
		Name:   name,

		BirthTime:  now,
		LastUpdate: now,

		Hunger:      DefaultHunger,
		Happiness:   DefaultHappiness,
		Cleanliness: DefaultCleanliness,
		Health:      DefaultHealth,
		Energy:      DefaultEnergy,
		Discipline:  DefaultDiscipline,

		Stage:      StageEgg,
		Level:      1,
		Experience: 0,

		Coins:   StarterCoins,
		Version: 1,
	}
}

// Expired se deriva del estado en lugar de persistirse: salud en 0 o
// demasiados care mistakes. Es terminal para este registro.
func (p Pet) Expired() bool {
	return p.Health <= 0 || p.CareMistakes >= FatalCareMistakes
}

// Alive es el complemento; las acciones solo aplican sobre mascotas vivas.
func (p Pet) Alive() bool {
	return !p.Expired()
}

// statsInBounds valida el invariante [0,100] sobre los seis stats core.
// Un registro fuera de rango al cargar es corrupción de datos y no se
// clampa en silencio.
func (p Pet) statsInBounds() bool {
	for _, v := range []float64{p.Hunger, p.Happiness, p.Cleanliness, p.Health, p.Energy, p.Discipline} {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}
