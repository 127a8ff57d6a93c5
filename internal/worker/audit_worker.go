package worker

import (
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/service"
)

// StartAuditWorker subscribes the audit notifier to the dispatcher.
func StartAuditWorker(notifier *service.AuditNotifier, dispatcher events.Dispatcher) {
	if notifier == nil || dispatcher == nil {
		return
	}
	notifier.Register(dispatcher)
}
