package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-club/app/entity"
)

type SettingRepository struct {
	db DBTX
}

func NewSettingRepository(db DBTX) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*entity.Setting, error) {
	item := &entity.Setting{}
	err := r.db.QueryRowContext(ctx,
		`SELECT setting_key, value, description, updated_at FROM settings WHERE setting_key = ?`,
		key,
	).Scan(&item.Key, &item.Value, &item.Description, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *SettingRepository) List(ctx context.Context) ([]*entity.Setting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT setting_key, value, description, updated_at FROM settings ORDER BY setting_key ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Setting, 0)
	for rows.Next() {
		item := &entity.Setting{}
		if err := rows.Scan(&item.Key, &item.Value, &item.Description, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, item *entity.Setting) error {
	query := `
		INSERT INTO settings (setting_key, value, description, updated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value), description = VALUES(description), updated_at = VALUES(updated_at)
	`
	_, err := r.db.ExecContext(ctx, query, item.Key, item.Value, item.Description, item.UpdatedAt)
	return err
}
