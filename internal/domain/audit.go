package domain

import "time"

// AuditEntry records one guarded-action invocation for the local audit trail.
// Outcome is the terminal result kind ("ok", "validation", "authorization",
// "remote", "rate_limit", "unexpected").
type AuditEntry struct {
	ID            int64     `json:"id"`
	CorrelationID string    `json:"correlationId"`
	TenantID      string    `json:"tenantId"`
	UserID        string    `json:"userId"`
	Action        string    `json:"action"`
	Outcome       string    `json:"outcome"`
	Detail        string    `json:"detail,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
