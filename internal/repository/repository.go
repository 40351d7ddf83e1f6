package repository

import (
	"context"

	"studiofin-backend/internal/domain"
)

type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int32) ([]domain.AuditEntry, int32, error)
}
