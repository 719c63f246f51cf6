package interfaces

import "context"

// INotifier triggers outbound notifications (email / in-app).
//
// Notify is fire-and-forget: implementations log failures and never report
// them to the caller.
type INotifier interface {
	Notify(ctx context.Context, name string, payload map[string]any)
}
