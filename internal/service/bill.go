package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"studiofin-backend/internal/billing"
	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/schema"
	"studiofin-backend/internal/viewcache"
)

type billService struct {
	api   FinanceAPI
	cache *viewcache.Cache

	// one memoized row derivation per tenant
	views sync.Map
}

func NewBillService(api FinanceAPI, cache *viewcache.Cache) BillService {
	return &billService{api: api, cache: cache}
}

func billsViewPath(tenantID string) string {
	return "/" + tenantID + "/bills"
}

func billViewPath(tenantID, billID string) string {
	return "/" + tenantID + "/bills/" + billID
}

func (s *billService) rowView(tenantID string) *billing.RowView {
	if v, ok := s.views.Load(tenantID); ok {
		return v.(*billing.RowView)
	}
	v, _ := s.views.LoadOrStore(tenantID, billing.NewRowView())
	return v.(*billing.RowView)
}

// ListBills serves the flattened, ordered installment rows for the tenant's
// bill table. The raw upstream payload is cached per tenant; the derivation is
// memoized so an unchanged payload and tab cost nothing.
func (s *billService) ListBills(ctx context.Context, identity domain.Identity, activeTab string) ([]domain.BillRow, error) {
	raw, err := s.cache.GetOrBuild(ctx, billsViewPath(identity.TenantID), func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Get(ctx, "/bills")
	})
	if err != nil {
		return nil, err
	}
	return s.rowView(identity.TenantID).Rows(raw, activeTab)
}

func (s *billService) CreateBill(ctx context.Context, identity domain.Identity, form map[string]string) error {
	in, err := schema.ParseBillInput(form)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"description":  in.Description,
		"amount":       in.Amount,
		"dueDate":      in.DueDate.Format("2006-01-02"),
		"type":         in.Type,
		"installments": in.Installments,
	}
	if _, err := s.api.Post(ctx, "/bills", payload); err != nil {
		return err
	}

	s.cache.Invalidate(billsViewPath(identity.TenantID))
	return nil
}

func (s *billService) UpdateBill(ctx context.Context, identity domain.Identity, billID string, form map[string]string) error {
	in, err := schema.ParseBillInput(form)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"description": in.Description,
		"amount":      in.Amount,
		"dueDate":     in.DueDate.Format("2006-01-02"),
		"type":        in.Type,
	}
	if _, err := s.api.Put(ctx, "/bills/"+url.PathEscape(billID), payload); err != nil {
		return err
	}

	s.cache.Invalidate(
		billsViewPath(identity.TenantID),
		billViewPath(identity.TenantID, billID),
	)
	return nil
}

func (s *billService) PayBill(ctx context.Context, identity domain.Identity, billID string) error {
	if _, err := s.api.Put(ctx, "/bills/"+url.PathEscape(billID)+"/pay", nil); err != nil {
		return err
	}

	s.cache.Invalidate(
		billsViewPath(identity.TenantID),
		billViewPath(identity.TenantID, billID),
	)
	return nil
}

// DeleteBill removes one installment or, with scope ALL_FUTURE, the whole
// recurring series rooted at billID.
func (s *billService) DeleteBill(ctx context.Context, identity domain.Identity, billID string, scope string) error {
	parsed, err := schema.ParseDeleteScope(scope)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/bills/%s?scope=%s", url.PathEscape(billID), parsed)
	if err := s.api.Delete(ctx, path); err != nil {
		return err
	}

	s.cache.Invalidate(
		billsViewPath(identity.TenantID),
		billViewPath(identity.TenantID, billID),
	)
	return nil
}
