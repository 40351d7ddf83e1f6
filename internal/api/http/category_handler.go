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

type CategoryHandler struct {
	pipeline    *action.Pipeline
	categorySvc service.CategoryService
}

func NewCategoryHandler(pipeline *action.Pipeline, categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{pipeline: pipeline, categorySvc: categorySvc}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := security.IdentityFromContext(r.Context())
	if identity == nil {
		writeUnauthorized(w)
		return
	}

	categories, err := h.categorySvc.ListCategories(r.Context(), *identity)
	if err != nil {
		writeListError(w, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := formValues(r)
	res := h.pipeline.Run(r.Context(), "categories.create", func(ctx context.Context, identity domain.Identity) error {
		return h.categorySvc.CreateCategory(ctx, identity, form)
	})
	writeResult(w, res)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]
	res := h.pipeline.Run(r.Context(), "categories.delete", func(ctx context.Context, identity domain.Identity) error {
		return h.categorySvc.DeleteCategory(ctx, identity, categoryID)
	})
	writeResult(w, res)
}
