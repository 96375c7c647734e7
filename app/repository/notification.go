package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-club/app/entity"
)

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, user_id, type, title, message, action_url, read_at, created_at`

func (r *NotificationRepository) Create(ctx context.Context, item *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, action_url, read_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		item.UserID,
		item.Type,
		item.Title,
		item.Message,
		item.ActionURL,
		nullableTimeValue(item.ReadAt),
		item.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint64) (*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = ?`

	item := &entity.Notification{}
	if err := scanNotification(r.db.QueryRowContext(ctx, query, id), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Notification, 0)
	for rows.Next() {
		item := &entity.Notification{}
		if err := scanNotification(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_at IS NULL`,
		userID,
	).Scan(&count)
	return count, err
}

// ExistsWithMessageFragment reports whether the user already has a notification of the
// given type whose message contains fragment.
func (r *NotificationRepository) ExistsWithMessageFragment(ctx context.Context, userID uint64, notificationType, fragment string) (bool, error) {
	query := `
		SELECT 1
		FROM notifications
		WHERE user_id = ?
		  AND type = ?
		  AND message LIKE ?
		LIMIT 1
	`

	var one int
	err := r.db.QueryRowContext(ctx, query, userID, notificationType, "%"+escapeLike(fragment)+"%").Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uint64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = ? WHERE id = ? AND user_id = ? AND read_at IS NULL`,
		at, id, userID,
	)
	return err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64, at time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = ? WHERE user_id = ? AND read_at IS NULL`,
		at, userID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanNotification(scanner rowScanner, item *entity.Notification) error {
	var readAt sql.NullTime
	err := scanner.Scan(
		&item.ID,
		&item.UserID,
		&item.Type,
		&item.Title,
		&item.Message,
		&item.ActionURL,
		&readAt,
		&item.CreatedAt,
	)
	if err != nil {
		return err
	}
	item.ReadAt = timePtr(readAt)
	return nil
}
