package ports

// Notifier is the user-notification capability injected into the submission
// services so the validation core stays free of presentation side effects.
// The production implementation logs; tests assert on recorded messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Confirm(msg string) bool
}
