package commands

// UserError is a notice for the player who issued a command, not a system failure.
// A command that returns one has not changed any state.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}
