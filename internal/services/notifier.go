package services

import "log"

// Notifier publishes fire-and-forget notification events for the email
// worker. pkg/rabbitmq.Client satisfies it.
type Notifier interface {
	Notify(event string, payload map[string]interface{}) error
}

// notify publishes an event and swallows failures: notification delivery is
// never allowed to fail the calling operation.
func notify(n Notifier, event string, payload map[string]interface{}) {
	if n == nil {
		return
	}
	if err := n.Notify(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s notification: %v", event, err)
	}
}
