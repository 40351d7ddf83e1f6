package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/schema"
	"studiofin-backend/internal/viewcache"
)

type studentService struct {
	api   FinanceAPI
	cache *viewcache.Cache
}

func NewStudentService(api FinanceAPI, cache *viewcache.Cache) StudentService {
	return &studentService{api: api, cache: cache}
}

func studentsViewPath(tenantID string) string {
	return "/" + tenantID + "/students"
}

func (s *studentService) ListStudents(ctx context.Context, identity domain.Identity) ([]domain.Student, error) {
	raw, err := s.cache.GetOrBuild(ctx, studentsViewPath(identity.TenantID), func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Get(ctx, "/students")
	})
	if err != nil {
		return nil, err
	}

	var students []domain.Student
	if err := json.Unmarshal(raw, &students); err != nil {
		return nil, fmt.Errorf("decoding student list: %w", err)
	}
	return students, nil
}

func (s *studentService) EnrollStudent(ctx context.Context, identity domain.Identity, form map[string]string) error {
	in, err := schema.ParseStudentInput(form)
	if err != nil {
		return err
	}

	if _, err := s.api.Post(ctx, "/students", in); err != nil {
		return err
	}

	s.cache.Invalidate(studentsViewPath(identity.TenantID))
	return nil
}

func (s *studentService) UpdateStudent(ctx context.Context, identity domain.Identity, studentID string, form map[string]string) error {
	in, err := schema.ParseStudentInput(form)
	if err != nil {
		return err
	}

	if _, err := s.api.Put(ctx, "/students/"+url.PathEscape(studentID), in); err != nil {
		return err
	}

	s.cache.Invalidate(
		studentsViewPath(identity.TenantID),
		studentsViewPath(identity.TenantID)+"/"+studentID,
	)
	return nil
}

func (s *studentService) DeactivateStudent(ctx context.Context, identity domain.Identity, studentID string) error {
	if _, err := s.api.Put(ctx, "/students/"+url.PathEscape(studentID)+"/deactivate", nil); err != nil {
		return err
	}

	s.cache.Invalidate(
		studentsViewPath(identity.TenantID),
		studentsViewPath(identity.TenantID)+"/"+studentID,
	)
	return nil
}
