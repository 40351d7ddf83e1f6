package billing

import (
	"encoding/json"
	"sync"

	"studiofin-backend/internal/domain"
)

// RowView memoizes the last flatten/sort/filter derivation. Rows re-derives
// only when the payload bytes or the active tab differ from the previous call,
// so repeated renders of an unchanged list are free. Callers must treat the
// returned slice as read-only.
type RowView struct {
	mu      sync.Mutex
	rawKey  string
	tabKey  string
	rows    []domain.BillRow
	primed  bool
	lastErr error
}

func NewRowView() *RowView {
	return &RowView{}
}

func (v *RowView) Rows(raw json.RawMessage, activeTab string) ([]domain.BillRow, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := string(raw)
	if v.primed && v.rawKey == key && v.tabKey == activeTab {
		return v.rows, v.lastErr
	}

	rows, err := Rows(raw, activeTab)
	v.rawKey = key
	v.tabKey = activeTab
	v.rows = rows
	v.lastErr = err
	v.primed = true
	return rows, err
}

// Reset drops the memoized derivation.
func (v *RowView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.primed = false
	v.rows = nil
	v.rawKey = ""
	v.tabKey = ""
	v.lastErr = nil
}
