package postgres

import (
	"context"
	"database/sql"
	"time"

	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/logger"
	"studiofin-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	query := `INSERT INTO action_audit (correlation_id, tenant_id, user_id, action, outcome, detail, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	logger.DatabaseCall("INSERT", "action_audit", "tenantID", entry.TenantID, "action", entry.Action)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, query,
		entry.CorrelationID, entry.TenantID, entry.UserID, entry.Action, entry.Outcome, entry.Detail, entry.CreatedAt,
	).Scan(&entry.ID)
	logger.DatabaseResult("INSERT", 1, err, "auditID", entry.ID)
	return err
}

func (r *auditRepository) ListByTenant(ctx context.Context, tenantID string, limit, offset int32) ([]domain.AuditEntry, int32, error) {
	query := `SELECT id, correlation_id, tenant_id, user_id, action, outcome, detail, created_at
	          FROM action_audit WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	countQuery := `SELECT count(*) FROM action_audit WHERE tenant_id = $1`
	err = r.db.QueryRowContext(ctx, countQuery, tenantID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.CorrelationID, &e.TenantID, &e.UserID, &e.Action, &e.Outcome, &e.Detail, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
