package service

import (
	"context"
	"encoding/json"

	"studiofin-backend/internal/domain"
)

// FinanceAPI is the slice of the remote client the services consume. The
// upstream is the system of record; every call is tenant-scoped by the
// forwarded credentials.
type FinanceAPI interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string) error
}

type BillService interface {
	ListBills(ctx context.Context, identity domain.Identity, activeTab string) ([]domain.BillRow, error)
	CreateBill(ctx context.Context, identity domain.Identity, form map[string]string) error
	UpdateBill(ctx context.Context, identity domain.Identity, billID string, form map[string]string) error
	PayBill(ctx context.Context, identity domain.Identity, billID string) error
	DeleteBill(ctx context.Context, identity domain.Identity, billID string, scope string) error
}

type StudentService interface {
	ListStudents(ctx context.Context, identity domain.Identity) ([]domain.Student, error)
	EnrollStudent(ctx context.Context, identity domain.Identity, form map[string]string) error
	UpdateStudent(ctx context.Context, identity domain.Identity, studentID string, form map[string]string) error
	DeactivateStudent(ctx context.Context, identity domain.Identity, studentID string) error
}

type CategoryService interface {
	ListCategories(ctx context.Context, identity domain.Identity) ([]domain.Category, error)
	CreateCategory(ctx context.Context, identity domain.Identity, form map[string]string) error
	DeleteCategory(ctx context.Context, identity domain.Identity, categoryID string) error
}

type EmailService interface {
	SendOverdueNotice(ctx context.Context, email, name string, bills []domain.BillRow) error
}
