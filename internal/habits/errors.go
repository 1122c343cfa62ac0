package habits

import "fmt"

// Reason classifies why a mutation was rejected.
type Reason int

const (
	ReasonEmptyName Reason = iota
	ReasonDuplicateName
	ReasonLimitExceeded
	ReasonInvalidTime
	ReasonInvalidInterval
	ReasonNotFound
)

// ValidationError is a rejected mutation. The habit set is left
// untouched whenever one of these is returned.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func errEmptyName() error {
	return &ValidationError{Reason: ReasonEmptyName, Message: "habit name must not be empty"}
}

func errDuplicateName(name string) error {
	return &ValidationError{Reason: ReasonDuplicateName, Message: fmt.Sprintf("habit %q already exists", name)}
}

func errLimitExceeded(limit int) error {
	return &ValidationError{Reason: ReasonLimitExceeded, Message: fmt.Sprintf("habit limit reached (%d slots); keep your streak going to unlock more", limit)}
}

func errInvalidTime(value string) error {
	return &ValidationError{Reason: ReasonInvalidTime, Message: fmt.Sprintf("invalid reminder time %q (expected HH:MM)", value)}
}

func errInvalidInterval(value string) error {
	return &ValidationError{Reason: ReasonInvalidInterval, Message: fmt.Sprintf("invalid interval %q (expected daily, weekly or monthly)", value)}
}

func errNotFound(id string) error {
	return &ValidationError{Reason: ReasonNotFound, Message: fmt.Sprintf("habit not found: %s", id)}
}
