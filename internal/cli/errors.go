package cli

import (
	"errors"
	"fmt"
)

var ErrInvalidChoice = errors.New("invalid menu choice")

// InvalidChoiceError is reported when the menu key is not recognised.
type InvalidChoiceError struct {
	Choice string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("InvalidChoiceError: Invalid menu choice: '%s'", e.Choice)
}

func (e *InvalidChoiceError) Is(target error) bool { return target == ErrInvalidChoice }
