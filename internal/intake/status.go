package intake

type StatusKind string

const (
	StatusIdle     StatusKind = "idle"
	StatusInFlight StatusKind = "in_flight"
	StatusSuccess  StatusKind = "success"
	StatusFailure  StatusKind = "failure"
)

// Status is the single visible outcome of a controller
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

func Idle() Status { return Status{Kind: StatusIdle} }
func InFlight() Status { return Status{Kind: StatusInFlight} }
func Success(message string) Status { return Status{Kind: StatusSuccess, Message: message} }
func Failure(message string) Status { return Status{Kind: StatusFailure, Message: message} }

// Text is the status line shown to the user; empty while idle or in flight
func (s Status) Text() string {
	switch s.Kind {
	case StatusSuccess, StatusFailure:
		return s.Message
	default:
		return ""
	}
}
