package schema

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"studiofin-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// BillInput is the validated payload for creating or updating a bill.
// Installments of 1 registers a one-off obligation; anything above expands
// into a recurring series upstream.
type BillInput struct {
	Description  string          `json:"description" validate:"required,min=2,max=120"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	DueDate      time.Time       `json:"dueDate" validate:"required"`
	Type         string          `json:"type" validate:"required,max=60"`
	Installments int             `json:"installments" validate:"min=1,max=60"`
}

// ParseBillInput decodes a raw form into a BillInput. Malformed values are
// reported as field errors, never as a parse failure; decode and validation
// messages come back together in a single field-error map.
func ParseBillInput(form map[string]string) (BillInput, error) {
	in := BillInput{
		Description:  form["description"],
		Type:         form["type"],
		Installments: 1,
	}
	fields := Errors{}

	if raw := form["amount"]; raw == "" {
		fields.Add("amount", "amount is a required field")
	} else if amount, err := decimal.NewFromString(raw); err != nil {
		fields.Add("amount", "amount must be a valid number")
	} else if !amount.IsPositive() {
		fields.Add("amount", "amount must be greater than zero")
	} else {
		in.Amount = amount
	}

	if raw := form["dueDate"]; raw == "" {
		fields.Add("dueDate", "dueDate is a required field")
	} else if due, err := time.Parse(dateLayout, raw); err != nil {
		fields.Add("dueDate", "dueDate must be a date in YYYY-MM-DD format")
	} else {
		in.DueDate = due
	}

	if raw := form["installments"]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields.Add("installments", "installments must be a whole number")
		} else {
			in.Installments = n
		}
	}

	if err := checkInto(fields, in); err != nil {
		return in, err
	}
	if len(fields) > 0 {
		return in, fields
	}
	return in, nil
}

// ParseDeleteScope decodes the scope of a bill deletion, defaulting to a
// single installment.
func ParseDeleteScope(raw string) (domain.DeleteScope, error) {
	switch domain.DeleteScope(raw) {
	case "", domain.DeleteScopeOne:
		return domain.DeleteScopeOne, nil
	case domain.DeleteScopeAllFuture:
		return domain.DeleteScopeAllFuture, nil
	}
	fields := Errors{}
	fields.Add("scope", "scope must be one of ONE or ALL_FUTURE")
	return "", fields
}
