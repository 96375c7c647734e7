package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-club/app/entity"
)

type ActivityLogRepository struct {
	db DBTX
}

func NewActivityLogRepository(db DBTX) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, item *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (user_id, action, description, subject_type, subject_id, ip_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableUint64Value(item.UserID),
		item.Action,
		nullableStringValue(item.Description),
		nullableStringValue(item.SubjectType),
		nullableUint64Value(item.SubjectID),
		item.IPAddress,
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

func (r *ActivityLogRepository) ListLatest(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, description, subject_type, subject_id, ip_address, created_at
		FROM activity_logs
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.ActivityLog, 0)
	for rows.Next() {
		item := &entity.ActivityLog{}
		if err := scanActivityLog(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanActivityLog(scanner rowScanner, item *entity.ActivityLog) error {
	var userID sql.NullInt64
	var description sql.NullString
	var subjectType sql.NullString
	var subjectID sql.NullInt64

	err := scanner.Scan(
		&item.ID,
		&userID,
		&item.Action,
		&description,
		&subjectType,
		&subjectID,
		&item.IPAddress,
		&item.CreatedAt,
	)
	if err != nil {
		return err
	}

	item.UserID = uint64Ptr(userID)
	item.Description = stringPtr(description)
	item.SubjectType = stringPtr(subjectType)
	item.SubjectID = uint64Ptr(subjectID)
	return nil
}
