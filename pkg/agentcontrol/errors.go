package agentcontrol

import "fmt"

const (
	ErrReasonNoSuchPeer         string = "ERR_NO_SUCH_PEER"
	ErrReasonNoSuchProperty     string = "ERR_NO_SUCH_PROPERTY"
	ErrReasonSessionExists      string = "ERR_SESSION_EXISTS"
	ErrReasonTechnicalException string = "ERR_TECHNICAL_EXCEPTION"
)

// CommandError is a reason-carrying error returned by controller operations
// so that bus and HTTP surfaces can map it to a structured reply.
type CommandError struct {
	Reason  string
	Details interface{}
}

func NewCommandError(reason string, details interface{}) error {
	return &CommandError{
		Reason:  reason,
		Details: details,
	}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed: reason: %s", e.Reason)
}

func IsCommandError(e error) bool {
	_, ok := e.(*CommandError)
	return ok
}
