package http

import (
	"net/http"
	"strconv"

	"studiofin-backend/internal/action"
	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/repository"
	"studiofin-backend/internal/security"
)

const defaultAuditPageSize = 50

// AuditHandler serves the tenant's guarded-action history to admins.
type AuditHandler struct {
	auditRepo repository.AuditRepository
}

func NewAuditHandler(auditRepo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := security.IdentityFromContext(r.Context())
	if identity == nil {
		writeUnauthorized(w)
		return
	}
	if identity.Role != domain.RoleAdmin {
		writeJSON(w, http.StatusForbidden, action.Result{Error: "admin role required"})
		return
	}

	limit := int32(defaultAuditPageSize)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = int32(n)
		}
	}
	var offset int32
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = int32(n)
		}
	}

	entries, total, err := h.auditRepo.ListByTenant(r.Context(), identity.TenantID, limit, offset)
	if err != nil {
		writeListError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   total,
	})
}
