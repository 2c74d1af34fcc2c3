package pgsql

import (
	"context"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/models"
	"github.com/SscSPs/staff_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const insertNotificationQuery = `
	INSERT INTO notifications (notification_id, kind, recipient, subject, payload, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func insertNotificationTx(ctx context.Context, tx pgx.Tx, n domain.Notification) error {
	m, err := mapping.ToModelNotification(n)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode notification", err)
	}
	if _, err := tx.Exec(ctx, insertNotificationQuery,
		m.NotificationID, m.Kind, m.Recipient, m.Subject, m.Payload, m.Status, m.CreatedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+m.NotificationID, err)
	}
	return nil
}

// SaveNotification stores a notification outside any other write.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	m, err := mapping.ToModelNotification(n)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode notification", err)
	}
	if _, err := r.Pool.Exec(ctx, insertNotificationQuery,
		m.NotificationID, m.Kind, m.Recipient, m.Subject, m.Payload, m.Status, m.CreatedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+m.NotificationID, err)
	}
	return nil
}

// ListNotifications returns the most recent notifications first.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT notification_id, kind, recipient, subject, payload, status, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1;
	`, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query notifications", err)
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		if err := rows.Scan(&m.NotificationID, &m.Kind, &m.Recipient, &m.Subject, &m.Payload, &m.Status, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan notification row", err)
		}
		n, err := mapping.ToDomainNotification(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode notification "+m.NotificationID, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating notification rows", err)
	}
	return out, nil
}
