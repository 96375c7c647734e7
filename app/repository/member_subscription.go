package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-club/app/entity"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type MemberSubscriptionRepository struct {
	db DBTX
}

func NewMemberSubscriptionRepository(db DBTX) *MemberSubscriptionRepository {
	return &MemberSubscriptionRepository{db: db}
}

const memberSubscriptionColumns = `
	id, user_id, recorded_by, type, start_date, end_date,
	amount_cents, payment_method, payment_reference, payment_status,
	verified_by, verified_at, created_at, updated_at
`

func (r *MemberSubscriptionRepository) Create(ctx context.Context, item *entity.MemberSubscription) error {
	query := `
		INSERT INTO member_subscriptions (
			user_id, recorded_by, type, start_date, end_date,
			amount_cents, payment_method, payment_reference, payment_status,
			verified_by, verified_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableUint64Value(item.UserID),
		nullableUint64Value(item.RecordedBy),
		item.Type,
		dateValue(item.StartDate),
		dateValue(item.EndDate),
		item.AmountCents,
		item.PaymentMethod,
		nullableStringValue(item.PaymentReference),
		item.PaymentStatus,
		nullableUint64Value(item.VerifiedBy),
		nullableTimeValue(item.VerifiedAt),
		item.CreatedAt,
		item.UpdatedAt,
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

func (r *MemberSubscriptionRepository) UpdatePayment(ctx context.Context, item *entity.MemberSubscription) error {
	query := `
		UPDATE member_subscriptions
		SET payment_status = ?, verified_by = ?, verified_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		item.PaymentStatus,
		nullableUint64Value(item.VerifiedBy),
		nullableTimeValue(item.VerifiedAt),
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *MemberSubscriptionRepository) FindByID(ctx context.Context, id uint64) (*entity.MemberSubscription, error) {
	query := `SELECT ` + memberSubscriptionColumns + ` FROM member_subscriptions WHERE id = ?`

	item := &entity.MemberSubscription{}
	if err := scanMemberSubscription(r.db.QueryRowContext(ctx, query, id), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *MemberSubscriptionRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.MemberSubscription, error) {
	query := `SELECT ` + memberSubscriptionColumns + `
		FROM member_subscriptions
		WHERE user_id = ?
		ORDER BY end_date DESC, id DESC
	`
	return r.listByQuery(ctx, query, userID)
}

func (r *MemberSubscriptionRepository) List(ctx context.Context, paymentStatus string, limit int) ([]*entity.MemberSubscription, error) {
	query := `SELECT ` + memberSubscriptionColumns + ` FROM member_subscriptions`
	args := make([]interface{}, 0, 2)
	if paymentStatus != "" {
		query += " WHERE payment_status = ?"
		args = append(args, paymentStatus)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	return r.listByQuery(ctx, query, args...)
}

// ListEndingBetween returns subscriptions whose end_date lies in [start, end], both inclusive.
func (r *MemberSubscriptionRepository) ListEndingBetween(ctx context.Context, start, end time.Time) ([]*entity.MemberSubscription, error) {
	query := `SELECT ` + memberSubscriptionColumns + `
		FROM member_subscriptions
		WHERE end_date BETWEEN ? AND ?
		ORDER BY id ASC
	`
	return r.listByQuery(ctx, query, dateValue(start), dateValue(end))
}

func (r *MemberSubscriptionRepository) listByQuery(ctx context.Context, query string, args ...interface{}) ([]*entity.MemberSubscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.MemberSubscription, 0)
	for rows.Next() {
		item := &entity.MemberSubscription{}
		if err := scanMemberSubscription(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanMemberSubscription(scanner rowScanner, item *entity.MemberSubscription) error {
	var userID sql.NullInt64
	var recordedBy sql.NullInt64
	var paymentReference sql.NullString
	var verifiedBy sql.NullInt64
	var verifiedAt sql.NullTime

	err := scanner.Scan(
		&item.ID,
		&userID,
		&recordedBy,
		&item.Type,
		&item.StartDate,
		&item.EndDate,
		&item.AmountCents,
		&item.PaymentMethod,
		&paymentReference,
		&item.PaymentStatus,
		&verifiedBy,
		&verifiedAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	item.UserID = uint64Ptr(userID)
	item.RecordedBy = uint64Ptr(recordedBy)
	item.PaymentReference = stringPtr(paymentReference)
	item.VerifiedBy = uint64Ptr(verifiedBy)
	item.VerifiedAt = timePtr(verifiedAt)
	return nil
}
