package service

import (
	"context"

	"conductor/internal/audit"
	"conductor/pkg/requestcontext"
)

// emitAudit never fails the caller; publish errors are only logged.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"error", err,
			"action", event.Action,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// authFailure logs a rejected login and records it in the audit trail.
func (s *Service) authFailure(ctx context.Context, reason, email string) {
	s.logger.WarnContext(ctx, "login rejected",
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitAudit(ctx, audit.Event{
		Action: string(audit.ActionAuthFailed),
		Email:  email,
		Reason: reason,
	})
	if s.metrics != nil {
		s.metrics.IncrementLogin(reason)
	}
}
