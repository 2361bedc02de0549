package logging

import (
	"context"

	"go.uber.org/zap"
)

// LogAuditEvent records a structured audit entry for a state-changing
// action. action names the operation ("create", "avatar_sync", ...), result
// is "success" or "failure", and details carries optional extra context such
// as an error category or the failing stage.
func LogAuditEvent(
	ctx context.Context,
	action, userID, resourceType, resourceID, result string,
	details map[string]any,
) {
	LoggerFromContext(ctx).Info("Audit event",
		zap.String("audit.action", action),
		zap.String("audit.user_id", userID),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", details),
	)
}
