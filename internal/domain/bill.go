package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillStatusOverdue         BillStatus = "OVERDUE"
	BillStatusAwaitingReceipt BillStatus = "AWAITING_RECEIPT"
	BillStatusPending         BillStatus = "PENDING"
	BillStatusPaid            BillStatus = "PAID"
	BillStatusCancelled       BillStatus = "CANCELLED"
)

// DeleteScope selects how much of a recurring series a delete targets.
type DeleteScope string

const (
	DeleteScopeOne       DeleteScope = "ONE"
	DeleteScopeAllFuture DeleteScope = "ALL_FUTURE"
)

// Bill is a billable or receivable obligation as served by the finance API.
// Installments holds the child bills of a recurring series (installment 2..N);
// children never carry their own Installments.
type Bill struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenantId"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"dueDate"`
	Status       BillStatus      `json:"status"`
	Type         string          `json:"type"`
	ParentID     string          `json:"parentId,omitempty"`
	Installments []Bill          `json:"installments,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// BillRow is one display row of the flattened installment view.
// TotalInstallments is 1 + number of children of the row's series; a value of 1
// means the obligation has no children.
type BillRow struct {
	Bill
	TotalInstallments int `json:"totalInstallments"`
}
