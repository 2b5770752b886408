// Package rules evaluates conditional logic and visibility rule groups
// against live form state.
//
// # Overview
//
// Two rule shapes hang off a field's config:
//
//   - Conditional: one condition, one UI action (show/hide/required/not_required).
//   - Visibility rules: a list of AND/OR condition groups; the field is visible
//     only when every group holds.
//
// Both are evaluated as pure functions of (rules, FormStateView). The view is
// re-read at every call so deferred render-time evaluation always sees current
// state; nothing is cached here.
//
// # Field references
//
// Conditions reference other fields by ULID. A PathResolver maps the ULID to a
// live form-state path (through the owning record's value-column naming). An
// unresolvable reference is never an error: the conditional becomes a no-op
// and a visibility condition is skipped without counting either way.
package rules

import "github.com/Ramsey-B/fern/pkg/utils"

// FormStateView is the evaluators' window onto in-flight form data.
type FormStateView interface {
	Read(path string) (any, bool)
	Write(path string, value any)
}

// PathResolver maps a field ULID to the form-state path holding its current
// value. ok is false when the reference cannot be resolved (e.g. the field was
// deleted).
type PathResolver func(fieldULID string) (string, bool)

// MapView is a FormStateView over a plain nested map, addressed by
// dot-separated paths.
type MapView map[string]any

func (v MapView) Read(path string) (any, bool) {
	return utils.ReadMapValue(v, path)
}

func (v MapView) Write(path string, value any) {
	utils.AssignMapValue(v, path, value)
}
