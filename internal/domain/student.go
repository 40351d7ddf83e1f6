package domain

import "time"

type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "ACTIVE"
	StudentStatusInactive StudentStatus = "INACTIVE"
)

// Student is an enrolled student record owned by the remote API.
type Student struct {
	ID        string        `json:"id"`
	TenantID  string        `json:"tenantId"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	BirthDate *time.Time    `json:"birthDate,omitempty"`
	Status    StudentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
