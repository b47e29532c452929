package model

import "fmt"

// InvalidValueError reports an enum field set to an unknown value
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func invalidValue(field, value string) error {
	return &InvalidValueError{Field: field, Value: value}
}
