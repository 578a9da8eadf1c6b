package service

import (
	"context"
	"log/slog"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
)

// auditor writes admin actions to admin_logs. The action it records has
// already been committed, so a failed write is logged and not returned.
type auditor struct {
	admins repository.AdminRepository
	logger *slog.Logger
}

func (a auditor) record(ctx context.Context, actor domain.Actor, action, details string) {
	if a.admins == nil {
		return
	}

	entry := &domain.AdminLog{
		AdminID:       actor.AdminID,
		AdminUsername: actor.Username,
		Action:        action,
		Details:       details,
	}
	if err := a.admins.Log(ctx, entry); err != nil {
		a.logger.Warn("writing audit log failed",
			"action", action,
			"admin", actor.Username,
			"error", err,
		)
	}
}
