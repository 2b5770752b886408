package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
)

// Kind classifies a FormError for callers that branch on failure mode.
type Kind string

const (
	KindUnknownFieldType     Kind = "unknown_field_type"
	KindMaxNestingExceeded   Kind = "max_nesting_exceeded"
	KindUnresolvableFieldRef Kind = "unresolvable_field_reference"
	KindInvalidConfig        Kind = "invalid_config"
	KindValidationFailed     Kind = "validation_failed"
	KindMutationFailed       Kind = "mutation_failed"
	KindStoreFailure         Kind = "store_failure"
)

type FormError struct {
	Kind      Kind
	Field     string
	Container string
	Rule      string
	Message   string
	rowIndex  *int
}

func NewFormError(kind Kind, msg string) *FormError {
	return &FormError{
		Kind:    kind,
		Message: msg,
	}
}

// NewFormErrorf creates a new FormError with a formatted message
func NewFormErrorf(kind Kind, format string, args ...any) *FormError {
	// Handle error wrapping directive %w
	// If one of the args is an error and format contains %w,
	// extract the error message and replace %w with %v
	for i, arg := range args {
		if err, ok := arg.(error); ok && strings.Contains(format, "%w") {
			format = strings.Replace(format, "%w", "%v", 1)
			args[i] = err.Error()
		}
	}

	return &FormError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func WrapFormError(kind Kind, e error) *FormError {
	if e == nil {
		return nil
	}

	if formError, ok := e.(*FormError); ok {
		return formError
	}

	return &FormError{
		Kind:    kind,
		Message: e.Error(),
	}
}

func (e *FormError) Error() string {
	path := []string{}
	if e.Container != "" {
		if e.rowIndex != nil {
			path = append(path, fmt.Sprintf("container '%s' row %d", e.Container, *e.rowIndex))
		} else {
			path = append(path, fmt.Sprintf("container '%s'", e.Container))
		}
	}
	if e.Field != "" {
		path = append(path, fmt.Sprintf("field '%s'", e.Field))
	}
	if e.Rule != "" {
		path = append(path, fmt.Sprintf("rule '%s'", e.Rule))
	}

	if len(path) == 0 {
		return e.Message
	}

	return strings.Join(path, " -> ") + ": " + e.Message
}

func (e *FormError) AddField(fieldKey string) *FormError {
	e.Field = fieldKey
	return e
}

func (e *FormError) AddContainer(containerKey string) *FormError {
	e.Container = containerKey
	return e
}

func (e *FormError) AddRule(rule string) *FormError {
	e.Rule = rule
	return e
}

func (e *FormError) AddRowIndex(rowIndex int) *FormError {
	e.rowIndex = &rowIndex
	return e
}

func (e *FormError) ToHTTPError() *httperror.HTTPError {
	status := http.StatusBadRequest
	if e.Kind == KindStoreFailure {
		status = http.StatusInternalServerError
	}
	return httperror.NewHTTPError(status, e.Error()).
		AddMetaValue("kind", string(e.Kind)).
		AddMetaValue("field", e.Field).
		AddMetaValue("container", e.Container).
		AddMetaValue("rule", e.Rule)
}

func IsFormError(err error) bool {
	_, ok := err.(*FormError)
	return ok
}

func IsKind(err error, kind Kind) bool {
	formError, ok := err.(*FormError)
	return ok && formError.Kind == kind
}
