package worker

import (
	"github.com/spec-kit/staff-portal/internal/service"
)

// StartAuditWorker registers the audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
