package jobs

import (
	"context"
	"encoding/json"

	"studiofin-backend/internal/billing"
	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/logger"
)

// overdueReport is one tenant's slice of the upstream overdue report.
type overdueReport struct {
	TenantID   string        `json:"tenantId"`
	AdminEmail string        `json:"adminEmail"`
	AdminName  string        `json:"adminName"`
	Bills      []domain.Bill `json:"bills"`
}

// NotifyOverdueBills pulls the upstream overdue report and emails each
// tenant's admin a notice listing the overdue installment rows.
func (jr *JobRunner) NotifyOverdueBills() {
	jr.runWithRecovery("NotifyOverdueBills", func(ctx context.Context) {
		raw, err := jr.api.Get(ctx, "/reports/overdue")
		if err != nil {
			logger.Error("Failed to fetch overdue report", "error", err)
			return
		}

		var reports []overdueReport
		if err := json.Unmarshal(raw, &reports); err != nil {
			logger.Error("Failed to decode overdue report", "error", err)
			return
		}

		for _, report := range reports {
			rows := billing.Flatten(report.Bills)
			billing.Sort(rows)
			if len(rows) == 0 {
				continue
			}
			if err := jr.email.SendOverdueNotice(ctx, report.AdminEmail, report.AdminName, rows); err != nil {
				logger.Error("Failed to send overdue notice", "tenant_id", report.TenantID, "error", err)
				continue
			}
			logger.Info("Overdue notice sent", "tenant_id", report.TenantID, "bills", len(rows))
		}
	})
}
