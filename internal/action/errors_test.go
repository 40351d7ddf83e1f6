package action

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studiofin-backend/internal/remote"
	"studiofin-backend/internal/schema"
)

func TestNormalize_Taxonomy(t *testing.T) {
	t.Run("ValidationErrors", func(t *testing.T) {
		fields := schema.Errors{}
		fields.Add("amount", "amount must be a valid number")
		e := Normalize(fields)
		assert.Equal(t, KindValidation, e.Kind)
		assert.Equal(t, []string{"amount must be a valid number"}, e.Fields["amount"])
	})

	t.Run("WrappedValidationErrors", func(t *testing.T) {
		fields := schema.Errors{}
		fields.Add("name", "required")
		e := Normalize(fmt.Errorf("parsing form: %w", fields))
		assert.Equal(t, KindValidation, e.Kind)
	})

	t.Run("RemoteError", func(t *testing.T) {
		e := Normalize(&remote.APIError{Status: http.StatusBadGateway, Message: "upstream down"})
		assert.Equal(t, KindRemote, e.Kind)
		assert.Equal(t, "upstream down", e.Message)
	})

	t.Run("RateLimit", func(t *testing.T) {
		e := Normalize(&remote.APIError{Status: http.StatusTooManyRequests, Message: "slow down", RetryAfter: 90 * time.Second})
		assert.Equal(t, KindRateLimit, e.Kind)
		assert.Equal(t, 90*time.Second, e.RetryAfter)
		assert.Contains(t, e.Message, "2 minutes") // 90s rounds up
	})

	t.Run("RateLimitMinimumOneMinute", func(t *testing.T) {
		e := Normalize(&remote.APIError{Status: http.StatusTooManyRequests, RetryAfter: 5 * time.Second})
		assert.Contains(t, e.Message, "1 minutes")
	})

	t.Run("Unauthorized", func(t *testing.T) {
		e := Normalize(ErrUnauthorized)
		assert.Equal(t, KindAuthorization, e.Kind)
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		e := Normalize(context.Canceled)
		assert.Equal(t, KindUnexpected, e.Kind)
	})

	t.Run("UnknownError", func(t *testing.T) {
		e := Normalize(errors.New("boom"))
		assert.Equal(t, KindUnexpected, e.Kind)
		assert.NotContains(t, e.Message, "boom")
	})
}

func TestResult_Shapes(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		res := OK()
		assert.True(t, res.Success)
		assert.Empty(t, res.Error)
		assert.Empty(t, res.Errors)
	})

	t.Run("ValidationCarriesOnlyFields", func(t *testing.T) {
		fields := schema.Errors{}
		fields.Add("dueDate", "required")
		res := Fail(fields)
		assert.False(t, res.Success)
		assert.Empty(t, res.Error)
		assert.NotEmpty(t, res.Errors)
	})

	t.Run("MessageFailuresCarryNoFields", func(t *testing.T) {
		res := Fail(errors.New("boom"))
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
		assert.Empty(t, res.Errors)
	})
}
