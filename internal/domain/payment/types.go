package payment

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid payment status")
	ErrInvalidMethod = errors.New("invalid payment method")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodTransfer Method = "transfer"
	MethodEwallet  Method = "ewallet"
)

func NewMethod(s string) (Method, error) {
	m := Method(s)
	if !m.IsValid() {
		return "", ErrInvalidMethod
	}
	return m, nil
}

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodEwallet:
		return true
	default:
		return false
	}
}
