package notify

import "log"

// Kind classifies a user-facing notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notifier delivers user-facing feedback. Fire-and-forget; the core never
// consumes a return value.
type Notifier interface {
	Notify(title, message string, kind Kind)
}

// LogNotifier writes notifications to the process log. The real UI swaps in
// its own implementation.
type LogNotifier struct{}

func (LogNotifier) Notify(title, message string, kind Kind) {
	log.Printf("[%s] %s: %s", kind, title, message)
}
