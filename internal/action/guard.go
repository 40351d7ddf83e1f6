package action

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/logger"
)

// SessionResolver yields the authenticated identity of the current request, or
// nil when there is none. It must have no side effects.
type SessionResolver interface {
	Resolve(ctx context.Context) (*domain.Identity, error)
}

// Auditor persists one record per guarded-action invocation. Failures are the
// auditor's own problem; the pipeline never lets them change an action result.
type Auditor interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// Operation is a tenant-scoped business function. A nil return means success;
// schema.Errors and remote errors are classified by the pipeline.
type Operation func(ctx context.Context, identity domain.Identity) error

// Pipeline turns business operations into guarded actions: session resolution,
// invocation with panic containment, uniform result reporting, and a
// best-effort audit record. Validation and cache invalidation live inside the
// operations themselves.
type Pipeline struct {
	sessions SessionResolver
	audit    Auditor
}

func NewPipeline(sessions SessionResolver, audit Auditor) *Pipeline {
	return &Pipeline{sessions: sessions, audit: audit}
}

// Run executes op as the guarded action named name. The operation is never
// invoked without an authenticated identity, and every terminal outcome is one
// of the three Result shapes.
func (p *Pipeline) Run(ctx context.Context, name string, op Operation) Result {
	correlationID := uuid.NewString()

	identity, err := p.sessions.Resolve(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Session resolution failed", "action", name, "correlation_id", correlationID, "error", err)
		res := Fail(ErrUnauthorized)
		p.record(ctx, correlationID, domain.Identity{}, name, res)
		return res
	}
	if identity == nil {
		logger.WarnContext(ctx, "Rejected unauthenticated action", "action", name, "correlation_id", correlationID)
		res := Fail(ErrUnauthorized)
		p.record(ctx, correlationID, domain.Identity{}, name, res)
		return res
	}

	res := p.invoke(ctx, *identity, name, op)
	if !res.Success && res.Kind != KindValidation {
		logger.WithIdentity(*identity).ErrorContext(ctx, "Guarded action failed",
			"action", name,
			"correlation_id", correlationID,
			"kind", string(res.Kind),
			"error", res.Error,
		)
	}
	p.record(ctx, correlationID, *identity, name, res)
	return res
}

func (p *Pipeline) invoke(ctx context.Context, identity domain.Identity, name string, op Operation) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Guarded action panicked", "action", name, "panic", r)
			res = Fail(fmt.Errorf("action %s panicked: %v", name, r))
		}
	}()

	if err := op(ctx, identity); err != nil {
		return Fail(err)
	}
	return OK()
}

func (p *Pipeline) record(ctx context.Context, correlationID string, identity domain.Identity, name string, res Result) {
	if p.audit == nil {
		return
	}
	entry := domain.AuditEntry{
		CorrelationID: correlationID,
		TenantID:      identity.TenantID,
		UserID:        identity.UserID,
		Action:        name,
		Outcome:       outcomeOf(res),
		Detail:        res.Error,
	}
	if err := p.audit.Record(ctx, entry); err != nil {
		logger.WarnContext(ctx, "Audit record dropped", "action", name, "correlation_id", correlationID, "error", err)
	}
}

func outcomeOf(res Result) string {
	if res.Success {
		return "ok"
	}
	return string(res.Kind)
}
