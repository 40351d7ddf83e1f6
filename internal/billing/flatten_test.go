package billing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiofin-backend/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func bill(id string, status domain.BillStatus, due string, children ...domain.Bill) domain.Bill {
	b := domain.Bill{
		ID:           id,
		Description:  "bill " + id,
		Amount:       decimal.NewFromInt(100),
		Status:       status,
		Type:         "expense",
		Installments: children,
	}
	if due != "" {
		b.DueDate = day(due)
	}
	return b
}

func TestNormalize(t *testing.T) {
	t.Run("NilPayload", func(t *testing.T) {
		bills, err := Normalize(nil)
		assert.NoError(t, err)
		assert.Empty(t, bills)
	})

	t.Run("NullPayload", func(t *testing.T) {
		bills, err := Normalize(json.RawMessage("null"))
		assert.NoError(t, err)
		assert.Empty(t, bills)
	})

	t.Run("BareArray", func(t *testing.T) {
		bills, err := Normalize(json.RawMessage(`[{"id":"a"},{"id":"b"}]`))
		require.NoError(t, err)
		require.Len(t, bills, 2)
		assert.Equal(t, "a", bills[0].ID)
	})

	t.Run("BillsWrapper", func(t *testing.T) {
		bills, err := Normalize(json.RawMessage(`{"bills":[{"id":"a"}]}`))
		require.NoError(t, err)
		require.Len(t, bills, 1)
	})

	t.Run("ProductsWrapper", func(t *testing.T) {
		bills, err := Normalize(json.RawMessage(`{"products":[{"id":"p"}]}`))
		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, "p", bills[0].ID)
	})

	t.Run("WrapperKeyPrecedence", func(t *testing.T) {
		// "bills" wins over "products" when both are present
		bills, err := Normalize(json.RawMessage(`{"products":[{"id":"p"}],"bills":[{"id":"b"}]}`))
		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, "b", bills[0].ID)
	})

	t.Run("UnknownWrapperKey", func(t *testing.T) {
		_, err := Normalize(json.RawMessage(`{"records":[]}`))
		assert.Error(t, err)
	})
}

func TestFlatten(t *testing.T) {
	t.Run("NoChildren", func(t *testing.T) {
		rows := Flatten([]domain.Bill{bill("a", domain.BillStatusPending, "2024-01-01")})
		require.Len(t, rows, 1)
		assert.Equal(t, 1, rows[0].TotalInstallments)
	})

	t.Run("ParentPrecedesChildrenInOrder", func(t *testing.T) {
		parent := bill("p", domain.BillStatusPending, "2024-01-01",
			bill("c1", domain.BillStatusPending, "2024-02-01"),
			bill("c2", domain.BillStatusPending, "2024-03-01"),
		)
		rows := Flatten([]domain.Bill{parent})
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"p", "c1", "c2"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
		for _, row := range rows {
			assert.Equal(t, 3, row.TotalInstallments)
		}
		// the parent row never carries the children along
		assert.Nil(t, rows[0].Installments)
	})

	t.Run("CountPreserved", func(t *testing.T) {
		parents := []domain.Bill{
			bill("a", domain.BillStatusPending, "2024-01-01"),
			bill("b", domain.BillStatusPaid, "2024-01-02", bill("b2", domain.BillStatusPending, "2024-02-02")),
			bill("c", domain.BillStatusOverdue, "2024-01-03",
				bill("c2", domain.BillStatusPending, "2024-02-03"),
				bill("c3", domain.BillStatusPending, "2024-03-03"),
			),
		}
		rows := Flatten(parents)
		want := 0
		for _, p := range parents {
			want += 1 + len(p.Installments)
		}
		assert.Len(t, rows, want)
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		parent := bill("p", domain.BillStatusPending, "2024-01-01", bill("c", domain.BillStatusPending, "2024-02-01"))
		parents := []domain.Bill{parent}
		_ = Flatten(parents)
		assert.Len(t, parents[0].Installments, 1)
	})
}

func TestSort(t *testing.T) {
	t.Run("StatusTierThenDate", func(t *testing.T) {
		rows := Flatten([]domain.Bill{
			bill("paid", domain.BillStatusPaid, "2024-01-01"),
			bill("overdue", domain.BillStatusOverdue, "2024-03-01"),
			bill("pending", domain.BillStatusPending, "2024-02-01"),
		})
		Sort(rows)
		assert.Equal(t, []string{"overdue", "pending", "paid"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	})

	t.Run("FullPriorityLadder", func(t *testing.T) {
		rows := Flatten([]domain.Bill{
			bill("cancelled", domain.BillStatusCancelled, "2024-01-01"),
			bill("paid", domain.BillStatusPaid, "2024-01-01"),
			bill("pending", domain.BillStatusPending, "2024-01-01"),
			bill("awaiting", domain.BillStatusAwaitingReceipt, "2024-01-01"),
			bill("overdue", domain.BillStatusOverdue, "2024-01-01"),
		})
		Sort(rows)
		got := make([]string, len(rows))
		for i, row := range rows {
			got[i] = row.ID
		}
		assert.Equal(t, []string{"overdue", "awaiting", "pending", "paid", "cancelled"}, got)
	})

	t.Run("DateAscendingWithinTier", func(t *testing.T) {
		rows := Flatten([]domain.Bill{
			bill("late", domain.BillStatusPending, "2024-05-01"),
			bill("early", domain.BillStatusPending, "2024-01-01"),
		})
		Sort(rows)
		assert.Equal(t, "early", rows[0].ID)
	})

	t.Run("UnknownStatusSortsLast", func(t *testing.T) {
		rows := Flatten([]domain.Bill{
			bill("weird", domain.BillStatus("SOMETHING_ELSE"), "2020-01-01"),
			bill("none", "", "2020-01-01"),
			bill("cancelled", domain.BillStatusCancelled, "2024-01-01"),
		})
		Sort(rows)
		assert.Equal(t, "cancelled", rows[0].ID)
	})

	t.Run("MissingDueDateSortsLastWithinTier", func(t *testing.T) {
		rows := Flatten([]domain.Bill{
			bill("undated", domain.BillStatusPending, ""),
			bill("dated", domain.BillStatusPending, "2099-12-31"),
		})
		Sort(rows)
		assert.Equal(t, "dated", rows[0].ID)
		assert.Equal(t, "undated", rows[1].ID)
	})

	t.Run("StableOnFullTie", func(t *testing.T) {
		rows := Flatten([]domain.Bill{
			bill("first", domain.BillStatusPending, "2024-01-01"),
			bill("second", domain.BillStatusPending, "2024-01-01"),
		})
		Sort(rows)
		assert.Equal(t, "first", rows[0].ID)
	})
}

func TestFilter(t *testing.T) {
	rows := Flatten([]domain.Bill{
		{ID: "a", Type: "expense"},
		{ID: "b", Type: "revenue"},
		{ID: "c", Type: "EXPENSE"},
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		got := Filter(rows, "expense")
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	})

	t.Run("EmptyTabKeepsAll", func(t *testing.T) {
		assert.Len(t, Filter(rows, ""), 3)
	})

	t.Run("NoMatches", func(t *testing.T) {
		assert.Empty(t, Filter(rows, "inventory"))
	})
}

func TestRows(t *testing.T) {
	raw := json.RawMessage(`{"bills":[
		{"id":"p","status":"PAID","dueDate":"2024-01-01T00:00:00Z","type":"expense",
		 "installments":[{"id":"c","status":"OVERDUE","dueDate":"2024-02-01T00:00:00Z","type":"expense"}]},
		{"id":"r","status":"PENDING","dueDate":"2024-01-15T00:00:00Z","type":"revenue"}
	]}`)

	rows, err := Rows(raw, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// overdue child first, then pending, then paid parent
	assert.Equal(t, []string{"c", "r", "p"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, 2, rows[0].TotalInstallments)

	filtered, err := Rows(raw, "EXPENSE")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.LessOrEqual(t, len(filtered), len(rows))
}

func TestRowView(t *testing.T) {
	raw := json.RawMessage(`[{"id":"a","status":"PENDING","type":"expense"}]`)
	view := NewRowView()

	first, err := view.Rows(raw, "")
	require.NoError(t, err)

	second, err := view.Rows(raw, "")
	require.NoError(t, err)
	// memoized: same derivation comes back for unchanged inputs
	assert.Same(t, &first[0], &second[0])

	third, err := view.Rows(raw, "expense")
	require.NoError(t, err)
	require.Len(t, third, 1)

	view.Reset()
	fourth, err := view.Rows(raw, "expense")
	require.NoError(t, err)
	require.Len(t, fourth, 1)
}
