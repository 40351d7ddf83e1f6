package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"studiofin-backend/internal/action"
	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/security"
	"studiofin-backend/internal/service"
)

type BillHandler struct {
	pipeline *action.Pipeline
	billSvc  service.BillService
}

func NewBillHandler(pipeline *action.Pipeline, billSvc service.BillService) *BillHandler {
	return &BillHandler{pipeline: pipeline, billSvc: billSvc}
}

func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := security.IdentityFromContext(r.Context())
	if identity == nil {
		writeUnauthorized(w)
		return
	}

	rows, err := h.billSvc.ListBills(r.Context(), *identity, r.URL.Query().Get("tab"))
	if err != nil {
		writeListError(w, err)
		return
	}
	if rows == nil {
		rows = []domain.BillRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := formValues(r)
	res := h.pipeline.Run(r.Context(), "bills.create", func(ctx context.Context, identity domain.Identity) error {
		return h.billSvc.CreateBill(ctx, identity, form)
	})
	writeResult(w, res)
}

func (h *BillHandler) Update(w http.ResponseWriter, r *http.Request) {
	billID := mux.Vars(r)["id"]
	form := formValues(r)
	res := h.pipeline.Run(r.Context(), "bills.update", func(ctx context.Context, identity domain.Identity) error {
		return h.billSvc.UpdateBill(ctx, identity, billID, form)
	})
	writeResult(w, res)
}

func (h *BillHandler) Pay(w http.ResponseWriter, r *http.Request) {
	billID := mux.Vars(r)["id"]
	res := h.pipeline.Run(r.Context(), "bills.pay", func(ctx context.Context, identity domain.Identity) error {
		return h.billSvc.PayBill(ctx, identity, billID)
	})
	writeResult(w, res)
}

func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	billID := mux.Vars(r)["id"]
	scope := r.URL.Query().Get("scope")
	res := h.pipeline.Run(r.Context(), "bills.delete", func(ctx context.Context, identity domain.Identity) error {
		return h.billSvc.DeleteBill(ctx, identity, billID, scope)
	})
	writeResult(w, res)
}
