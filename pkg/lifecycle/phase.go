package lifecycle

// Phase is the externally observable state of the creation lifecycle.
type Phase int

const (
	// Idle means no job is running and no notification is visible.
	Idle Phase = iota
	// Running means a creation job is in flight.
	Running
	// AwaitingDismiss means the job finished and its log stays visible
	// until the dismiss timer fires.
	AwaitingDismiss
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case AwaitingDismiss:
		return "awaiting-dismiss"
	default:
		return "unknown"
	}
}
