package menu

// Status is how a single menu action ended.
type Status int

const (
	Completed Status = iota
	Cancelled
	Failed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Outcome is returned by every action. Message is the reason for Cancelled,
// the diagnostic for Failed and an optional summary for Completed.
type Outcome struct {
	Status  Status
	Message string
}

func completed(msg string) Outcome { return Outcome{Status: Completed, Message: msg} }
func cancelled(msg string) Outcome { return Outcome{Status: Cancelled, Message: msg} }
func failed(msg string) Outcome    { return Outcome{Status: Failed, Message: msg} }
