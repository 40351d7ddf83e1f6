package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiofin-backend/internal/config"
	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/viewcache"
)

type stubAPI struct {
	payload json.RawMessage
	err     error
}

func (s *stubAPI) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return s.payload, s.err
}

func (s *stubAPI) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return nil, nil
}

func (s *stubAPI) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return nil, nil
}

func (s *stubAPI) Delete(ctx context.Context, path string) error {
	return nil
}

type sentNotice struct {
	email string
	name  string
	rows  []domain.BillRow
}

type stubEmail struct {
	sent []sentNotice
	err  error
}

func (s *stubEmail) SendOverdueNotice(ctx context.Context, email, name string, bills []domain.BillRow) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentNotice{email: email, name: name, rows: bills})
	return nil
}

func overdueReportJSON(t *testing.T) json.RawMessage {
	t.Helper()
	reports := []overdueReport{
		{
			TenantID:   "t1",
			AdminEmail: "admin@studio-one.test",
			AdminName:  "Ana",
			Bills: []domain.Bill{
				{
					ID:      "b1",
					Status:  domain.BillStatusOverdue,
					DueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
					Installments: []domain.Bill{
						{ID: "b1-2", Status: domain.BillStatusOverdue, DueDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
					},
				},
			},
		},
		{
			TenantID:   "t2",
			AdminEmail: "admin@studio-two.test",
			AdminName:  "Bo",
			Bills:      nil,
		},
	}
	raw, err := json.Marshal(reports)
	require.NoError(t, err)
	return raw
}

func TestNotifyOverdueBills(t *testing.T) {
	t.Run("SendsOnePerTenantWithBills", func(t *testing.T) {
		email := &stubEmail{}
		runner := NewJobRunner(&stubAPI{payload: overdueReportJSON(t)}, viewcache.New(time.Minute), email, &config.Config{})

		runner.NotifyOverdueBills()

		require.Len(t, email.sent, 1, "tenants without overdue rows get no notice")
		notice := email.sent[0]
		assert.Equal(t, "admin@studio-one.test", notice.email)
		assert.Equal(t, "Ana", notice.name)
		require.Len(t, notice.rows, 2)
		assert.Equal(t, 2, notice.rows[0].TotalInstallments)
		assert.True(t, notice.rows[0].DueDate.Before(notice.rows[1].DueDate), "rows are sorted before sending")
	})

	t.Run("UpstreamFailureSendsNothing", func(t *testing.T) {
		email := &stubEmail{}
		runner := NewJobRunner(&stubAPI{err: errors.New("upstream down")}, viewcache.New(time.Minute), email, &config.Config{})

		runner.NotifyOverdueBills()
		assert.Empty(t, email.sent)
	})

	t.Run("MalformedReportSendsNothing", func(t *testing.T) {
		email := &stubEmail{}
		runner := NewJobRunner(&stubAPI{payload: json.RawMessage(`{"not":"a list"}`)}, viewcache.New(time.Minute), email, &config.Config{})

		runner.NotifyOverdueBills()
		assert.Empty(t, email.sent)
	})
}

func TestSweepViewCache(t *testing.T) {
	cache := viewcache.New(time.Minute)
	_, err := cache.GetOrBuild(context.Background(), "/t1/bills", func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`[]`), nil
	})
	require.NoError(t, err)
	cache.Invalidate("/t1/bills")

	runner := NewJobRunner(&stubAPI{}, cache, &stubEmail{}, &config.Config{})
	runner.SweepViewCache()

	assert.Zero(t, cache.Len())
}
