package domain

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// Identity is the authenticated caller every guarded action runs as. All remote
// reads and mutations are implicitly scoped to TenantID.
type Identity struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Role     Role   `json:"role"`
}
