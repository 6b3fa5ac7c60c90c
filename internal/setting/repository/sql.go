package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]model.Setting, error) {
	settings := []model.Setting{}
	err := r.DB.SelectContext(ctx, &settings, `SELECT * FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SQLRepository) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	err := r.DB.GetContext(ctx, &s, r.DB.Rebind(`SELECT * FROM settings WHERE key = ? LIMIT 1`), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, s *model.Setting) error {
	q := `
        INSERT INTO settings (id, key, value, description, created_at, updated_at)
        VALUES (:id, :key, :value, :description, :created_at, :updated_at)
        ON CONFLICT (key) DO UPDATE SET
            value = excluded.value,
            description = COALESCE(excluded.description, settings.description),
            updated_at = excluded.updated_at
    `
	bound, args, err := sqlx.Named(q, s)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, r.DB.Rebind(bound), args...)
	return err
}
