package domain

import "time"

type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "EXPENSE"
	CategoryKindRevenue CategoryKind = "REVENUE"
)

// Category labels bills for the dashboard tab filter. Bill.Type references a
// category name; the comparison is case-insensitive on the display side.
type Category struct {
	ID        string       `json:"id"`
	TenantID  string       `json:"tenantId"`
	Name      string       `json:"name"`
	Kind      CategoryKind `json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
}
