package repl

// BadInputError reports a malformed invocation: wrong argument count for a
// known command. It never reaches the engine and never mutates state.
type BadInputError struct {
	Msg string
}

func (e *BadInputError) Error() string {
	return "improper command: " + e.Msg
}

func badInput(msg string) error {
	return &BadInputError{Msg: msg}
}
