package postgres

import (
	"context"
	"database/sql"

	"pixel-pet/internal/domain/games"
)

type GamesRepo struct {
	db *sql.DB
}

func NewGamesRepo(db *sql.DB) *GamesRepo {
	return &GamesRepo{db: db}
}

func (r *GamesRepo) Create(ctx context.Context, s games.GameSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO game_sessions (
			id, pet_id, game_type, result,
			experience_gained, coins_gained, played_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		s.ID, s.PetID, string(s.GameType), string(s.Outcome),
		s.ExperienceGained, s.CoinsGained, s.PlayedAt,
	)
	return err
}

func (r *GamesRepo) ListByPet(ctx context.Context, petID string, limit int) ([]games.GameSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, game_type, result,
		       experience_gained, coins_gained, played_at
		FROM game_sessions
		WHERE pet_id = $1
		ORDER BY played_at DESC
		LIMIT $2
	`, petID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]games.GameSession, 0)
	for rows.Next() {
		var s games.GameSession
		var gameType, outcome string
		if err := rows.Scan(
			&s.ID, &s.PetID, &gameType, &outcome,
			&s.ExperienceGained, &s.CoinsGained, &s.PlayedAt,
		); err != nil {
			return nil, err
		}
		s.GameType = games.GameType(gameType)
		s.Outcome = games.Outcome(outcome)
		out = append(out, s)
	}

	return out, rows.Err()
}
