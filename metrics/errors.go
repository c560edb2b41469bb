package metrics

import (
	"fmt"
	"sort"
	"strings"
)

// DuplicateNameError means a metric name was registered twice in one registry.
type DuplicateNameError struct {
	Name string
}

// NewDuplicateNameError returns DuplicateNameError for the given metric name.
func NewDuplicateNameError(name string) DuplicateNameError {
	return DuplicateNameError{Name: name}
}

func (err DuplicateNameError) Error() string {
	return fmt.Sprintf("metric %q is already registered", err.Name)
}

// UnknownMetricError means a record call referenced a metric the registry
// does not hold, or holds as a different kind than the caller expected.
type UnknownMetricError struct {
	Name string
	Want string
}

// NewUnknownMetricError returns UnknownMetricError for the given metric name.
// want describes the expected instrument and may be empty.
func NewUnknownMetricError(name, want string) UnknownMetricError {
	return UnknownMetricError{Name: name, Want: want}
}

func (err UnknownMetricError) Error() string {
	if err.Want == "" {
		return fmt.Sprintf("metric %q is not registered", err.Name)
	}
	return fmt.Sprintf("metric %q is not registered as a %s", err.Name, err.Want)
}

// LabelMismatchError means the labels supplied with a sample do not match the
// label names declared by the metric definition.
type LabelMismatchError struct {
	Name     string
	Expected []string
	Got      []string
}

// NewLabelMismatchError returns LabelMismatchError describing the declared
// and the supplied label names.
func NewLabelMismatchError(name string, expected []string, got Labels) LabelMismatchError {
	gotNames := make([]string, 0, len(got))
	for labelName := range got {
		gotNames = append(gotNames, labelName)
	}
	sort.Strings(gotNames)
	return LabelMismatchError{Name: name, Expected: expected, Got: gotNames}
}

func (err LabelMismatchError) Error() string {
	return fmt.Sprintf("metric %q expects labels [%s], got [%s]",
		err.Name, strings.Join(err.Expected, " "), strings.Join(err.Got, " "))
}

// InvalidValueError means a recorded value or state is outside the metric's
// domain.
type InvalidValueError struct {
	Name   string
	Reason string
}

// NewInvalidValueError returns InvalidValueError with the rejection reason.
func NewInvalidValueError(name, reason string) InvalidValueError {
	return InvalidValueError{Name: name, Reason: reason}
}

func (err InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for metric %q: %s", err.Name, err.Reason)
}
