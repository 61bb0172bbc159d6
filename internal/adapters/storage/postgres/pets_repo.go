package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pixel-pet/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, user_id, name,
	birth_time, last_update, sleep_start,
	last_fed, last_played, last_cleaned, last_disciplined,
	hunger, happiness, cleanliness, health, energy, discipline,
	stage, level, experience,
	is_sick, is_sleeping,
	care_mistakes, coins, games_won, games_lost, training_sessions,
	version
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)
	`,
		p.ID, p.UserID, p.Name,
		p.BirthTime, p.LastUpdate, toNullTime(p.SleepStart),
		zeroAsNull(p.LastFed), zeroAsNull(p.LastPlayed), zeroAsNull(p.LastCleaned), zeroAsNull(p.LastDisciplined),
		p.Hunger, p.Happiness, p.Cleanliness, p.Health, p.Energy, p.Discipline,
		string(p.Stage), p.Level, p.Experience,
		p.IsSick, p.IsSleeping,
		p.CareMistakes, p.Coins, p.GamesWon, p.GamesLost, p.TrainingSessions,
		p.Version,
	)
	return err
}

// Update con optimistic locking: el WHERE exige la versión leída; si otro
// write ganó la carrera no afecta filas y devolvemos ErrConflict para que
// el servicio reintente la secuencia completa.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			last_update = $3,
			sleep_start = $4,
			last_fed = $5,
			last_played = $6,
			last_cleaned = $7,
			last_disciplined = $8,
			hunger = $9,
			happiness = $10,
			cleanliness = $11,
			health = $12,
			energy = $13,
			discipline = $14,
			stage = $15,
			level = $16,
			experience = $17,
			is_sick = $18,
			is_sleeping = $19,
			care_mistakes = $20,
			coins = $21,
			games_won = $22,
			games_lost = $23,
			training_sessions = $24,
			version = version + 1
		WHERE id = $1 AND version = $2
	`,
		p.ID, p.Version,
		p.LastUpdate, toNullTime(p.SleepStart),
		zeroAsNull(p.LastFed), zeroAsNull(p.LastPlayed), zeroAsNull(p.LastCleaned), zeroAsNull(p.LastDisciplined),
		p.Hunger, p.Happiness, p.Cleanliness, p.Health, p.Energy, p.Discipline,
		string(p.Stage), p.Level, p.Experience,
		p.IsSick, p.IsSleeping,
		p.CareMistakes, p.Coins, p.GamesWon, p.GamesLost, p.TrainingSessions,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		// Puede ser fila inexistente o versión vieja; distinguimos con una
		// lectura barata para no enmascarar un NotFound como Conflict.
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM pets WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pets.ErrNotFound
		}
		return pets.ErrConflict
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) GetActiveByUser(ctx context.Context, userID string) (pets.Pet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	// "Viva" se deriva igual que en el dominio: salud > 0 y care mistakes
	// bajo el umbral fatal. Los registros expirados quedan como historial.
	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE user_id = $1 AND health > 0 AND care_mistakes < $2
		ORDER BY birth_time DESC
		LIMIT 1
	`, userID, pets.FatalCareMistakes)

	return scanPet(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var stage string
	var sleepStart, lastFed, lastPlayed, lastCleaned, lastDisciplined sql.NullTime

	if err := row.Scan(
		&p.ID, &p.UserID, &p.Name,
		&p.BirthTime, &p.LastUpdate, &sleepStart,
		&lastFed, &lastPlayed, &lastCleaned, &lastDisciplined,
		&p.Hunger, &p.Happiness, &p.Cleanliness, &p.Health, &p.Energy, &p.Discipline,
		&stage, &p.Level, &p.Experience,
		&p.IsSick, &p.IsSleeping,
		&p.CareMistakes, &p.Coins, &p.GamesWon, &p.GamesLost, &p.TrainingSessions,
		&p.Version,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	p.Stage = pets.Stage(stage)
	if sleepStart.Valid {
		t := sleepStart.Time
		p.SleepStart = &t
	}
	p.LastFed = nullAsZero(lastFed)
	p.LastPlayed = nullAsZero(lastPlayed)
	p.LastCleaned = nullAsZero(lastCleaned)
	p.LastDisciplined = nullAsZero(lastDisciplined)

	return p, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Las anclas de cooldown sin acción previa viajan como NULL.
func zeroAsNull(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func nullAsZero(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
