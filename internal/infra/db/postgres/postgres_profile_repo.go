package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-numerology-bot/internal/domain"
	"telegram-numerology-bot/internal/domain/model"
	"telegram-numerology-bot/internal/domain/ports/repository"
)

var _ repository.ProfileRepository = (*PostgresProfileRepo)(nil)

// PostgresProfileRepo persists user profiles. Schema:
//
//	CREATE TABLE profiles (
//	  id            UUID PRIMARY KEY,
//	  telegram_id   BIGINT UNIQUE NOT NULL,
//	  username      TEXT NOT NULL DEFAULT '',
//	  birth_date    TEXT NOT NULL DEFAULT '',
//	  gender        TEXT NOT NULL DEFAULT '',
//	  registered_at TIMESTAMPTZ NOT NULL,
//	  last_active_at TIMESTAMPTZ NOT NULL
//	);
type PostgresProfileRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileRepo(pool *pgxpool.Pool) *PostgresProfileRepo {
	return &PostgresProfileRepo{pool: pool}
}

func (r *PostgresProfileRepo) Save(ctx context.Context, p *model.UserProfile) error {
	const q = `
INSERT INTO profiles (id, telegram_id, username, birth_date, gender, registered_at, last_active_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (telegram_id) DO UPDATE SET
  username=$3, birth_date=$4, gender=$5, last_active_at=$7;
`
	_, err := r.pool.Exec(ctx, q, p.ID, p.TelegramID, p.Username, p.BirthDate, string(p.Gender), p.RegisteredAt, p.LastActiveAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.UserProfile, error) {
	const q = `
SELECT id, telegram_id, username, birth_date, gender, registered_at, last_active_at
  FROM profiles WHERE telegram_id=$1;
`
	var p model.UserProfile
	var gender string
	err := r.pool.QueryRow(ctx, q, tgID).Scan(
		&p.ID, &p.TelegramID, &p.Username, &p.BirthDate, &gender, &p.RegisteredAt, &p.LastActiveAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	p.Gender = model.Gender(gender)
	return &p, nil
}

func (r *PostgresProfileRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}
