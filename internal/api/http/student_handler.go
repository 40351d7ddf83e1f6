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

type StudentHandler struct {
	pipeline   *action.Pipeline
	studentSvc service.StudentService
}

func NewStudentHandler(pipeline *action.Pipeline, studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{pipeline: pipeline, studentSvc: studentSvc}
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := security.IdentityFromContext(r.Context())
	if identity == nil {
		writeUnauthorized(w)
		return
	}

	students, err := h.studentSvc.ListStudents(r.Context(), *identity)
	if err != nil {
		writeListError(w, err)
		return
	}
	if students == nil {
		students = []domain.Student{}
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	form := formValues(r)
	res := h.pipeline.Run(r.Context(), "students.enroll", func(ctx context.Context, identity domain.Identity) error {
		return h.studentSvc.EnrollStudent(ctx, identity, form)
	})
	writeResult(w, res)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["id"]
	form := formValues(r)
	res := h.pipeline.Run(r.Context(), "students.update", func(ctx context.Context, identity domain.Identity) error {
		return h.studentSvc.UpdateStudent(ctx, identity, studentID, form)
	})
	writeResult(w, res)
}

func (h *StudentHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["id"]
	res := h.pipeline.Run(r.Context(), "students.deactivate", func(ctx context.Context, identity domain.Identity) error {
		return h.studentSvc.DeactivateStudent(ctx, identity, studentID)
	})
	writeResult(w, res)
}
