package billing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"studiofin-backend/internal/domain"
)

// statusPriority orders rows for display. Anything unknown or empty sorts after
// every recognized status.
var statusPriority = map[domain.BillStatus]int{
	domain.BillStatusOverdue:         0,
	domain.BillStatusAwaitingReceipt: 1,
	domain.BillStatusPending:         2,
	domain.BillStatusPaid:            3,
	domain.BillStatusCancelled:       4,
}

const unknownStatusPriority = 99

// listKeys are the wrapper-object keys accepted by Normalize, tried in order.
var listKeys = []string{"bills", "products", "items"}

// Normalize resolves the finance API's union-shaped list payload to a slice of
// bills. Accepted shapes: empty/null, a bare JSON array, or an object exposing
// the array under one of listKeys.
func Normalize(raw json.RawMessage) ([]domain.Bill, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var bills []domain.Bill
		if err := json.Unmarshal(raw, &bills); err != nil {
			return nil, fmt.Errorf("decoding bill list: %w", err)
		}
		return bills, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("decoding bill list wrapper: %w", err)
	}
	for _, key := range listKeys {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		var bills []domain.Bill
		if err := json.Unmarshal(inner, &bills); err != nil {
			return nil, fmt.Errorf("decoding bill list under %q: %w", key, err)
		}
		return bills, nil
	}
	return nil, fmt.Errorf("bill list payload has none of the known keys %v", listKeys)
}

// Flatten expands every parent bill and its installment children into display
// rows. The parent row always precedes its children, children keep their
// original order, and each row of a series carries the same TotalInstallments.
func Flatten(parents []domain.Bill) []domain.BillRow {
	rows := make([]domain.BillRow, 0, len(parents))
	for _, parent := range parents {
		total := 1 + len(parent.Installments)

		head := parent
		head.Installments = nil
		rows = append(rows, domain.BillRow{Bill: head, TotalInstallments: total})

		for _, child := range parent.Installments {
			rows = append(rows, domain.BillRow{Bill: child, TotalInstallments: total})
		}
	}
	return rows
}

// Sort orders rows by status priority, then ascending due date. The sort is
// stable, so rows tied on both keys keep their flattened order. A zero due
// date sorts after any real date within its status bucket.
func Sort(rows []domain.BillRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := priorityOf(rows[i].Status), priorityOf(rows[j].Status)
		if pi != pj {
			return pi < pj
		}
		return dueBefore(rows[i], rows[j])
	})
}

func priorityOf(status domain.BillStatus) int {
	if p, ok := statusPriority[status]; ok {
		return p
	}
	return unknownStatusPriority
}

func dueBefore(a, b domain.BillRow) bool {
	// Missing dates are treated as maximal so they never float above dated rows.
	if a.DueDate.IsZero() {
		return false
	}
	if b.DueDate.IsZero() {
		return true
	}
	return a.DueDate.Before(b.DueDate)
}

// Filter retains the rows whose type matches activeTab, compared
// case-insensitively. An empty activeTab retains everything.
func Filter(rows []domain.BillRow, activeTab string) []domain.BillRow {
	if activeTab == "" {
		return rows
	}
	filtered := make([]domain.BillRow, 0, len(rows))
	for _, row := range rows {
		if strings.EqualFold(row.Type, activeTab) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Rows runs the full pipeline: normalize, flatten, sort, filter. The input
// payload is never mutated; the returned slice is freshly allocated.
func Rows(raw json.RawMessage, activeTab string) ([]domain.BillRow, error) {
	parents, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	rows := Flatten(parents)
	Sort(rows)
	return Filter(rows, activeTab), nil
}
