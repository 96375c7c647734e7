package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-club/app/entity"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingConflict = errors.New("booking conflicts with an existing booking")
)

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, court, start_at, end_at, amount_cents, status, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, item *entity.Booking) error {
	query := `
		INSERT INTO bookings (user_id, court, start_at, end_at, amount_cents, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		item.UserID,
		item.Court,
		item.StartAt,
		item.EndAt,
		item.AmountCents,
		item.Status,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrBookingConflict
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, item *entity.Booking) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		item.Status, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	item := &entity.Booking{}
	if err := scanBooking(r.db.QueryRowContext(ctx, query, id), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = ?
		ORDER BY start_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Booking, 0)
	for rows.Next() {
		item := &entity.Booking{}
		if err := scanBooking(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// HasOverlap reports whether a confirmed booking on court intersects [start, end).
func (r *BookingRepository) HasOverlap(ctx context.Context, court int32, start, end time.Time) (bool, error) {
	query := `
		SELECT 1
		FROM bookings
		WHERE court = ?
		  AND status = ?
		  AND start_at < ?
		  AND end_at > ?
		LIMIT 1
	`

	var one int
	err := r.db.QueryRowContext(ctx, query, court, entity.BookingStatusConfirmed, end, start).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanBooking(scanner rowScanner, item *entity.Booking) error {
	return scanner.Scan(
		&item.ID,
		&item.UserID,
		&item.Court,
		&item.StartAt,
		&item.EndAt,
		&item.AmountCents,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}
