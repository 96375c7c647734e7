package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vibast-solutions/ms-go-club/app/entity"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, avatar, phone, created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	item := &entity.User{}
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`

	item := &entity.User{}
	if err := scanUser(r.db.QueryRowContext(ctx, query, email), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

func scanUser(scanner rowScanner, item *entity.User) error {
	var role string
	var avatar sql.NullString
	var phone sql.NullString

	err := scanner.Scan(
		&item.ID,
		&item.Name,
		&item.Email,
		&item.PasswordHash,
		&role,
		&avatar,
		&phone,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	parsed, err := entity.ParseRole(role)
	if err != nil {
		return fmt.Errorf("user %d: %w: %q", item.ID, err, role)
	}
	item.Role = parsed
	item.Avatar = stringPtr(avatar)
	item.Phone = stringPtr(phone)
	return nil
}
