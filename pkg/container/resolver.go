// Package container walks repeater/builder values to discover nested field
// definitions and to locate where inside the container tree a given field's
// value lives.
//
// # Overview
//
// Container fields store a list of rows. A row is either a flat map of
// fieldKey -> value or a `{data: {...}}` wrapper around one; both shapes are
// accepted everywhere and normalized on read. Nested containers inside a row
// nest further row lists, to arbitrary depth in stored data.
//
// The walk is the one recursion in the engine bounded by attacker-controlled
// input (stored JSON), so it carries an explicit depth cap. Everything else in
// the engine recurses over the static field/schema graph only.
package container

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// MaxDepth caps container recursion over stored values.
const MaxDepth = 32

// ResolveAllFields returns the complete set of field definitions relevant to
// the record's form: its direct fields plus every field discovered nested
// inside container values, deduplicated by ULID. Definition order is
// preserved, with nested discoveries appended in walk order.
func ResolveAllFields(record models.Record) (models.Fields, error) {
	direct := record.FieldDefinitions()
	lookup := direct.Flatten()

	resolved := models.Fields{}
	seen := map[string]bool{}

	add := func(field models.Field) {
		if seen[field.ULID] {
			return
		}
		seen[field.ULID] = true
		resolved = append(resolved, field)
	}

	for _, field := range direct {
		add(field)
	}

	if err := walkContainerData(record.ValueTree(), lookup, add, 0); err != nil {
		return nil, err
	}

	return resolved, nil
}

// walkContainerData finds container values in the map, then walks their rows
// looking up nested fields by key and recursing into each row.
func walkContainerData(values map[string]any, lookup models.Fields, add func(models.Field), depth int) error {
	if depth > MaxDepth {
		return errors.NewFormErrorf(errors.KindMaxNestingExceeded, "container nesting exceeds %d levels", MaxDepth)
	}

	for key, value := range values {
		field, ok := lookup.Find(key)
		if !ok || !field.IsContainer() {
			continue
		}

		for _, row := range RowList(value) {
			rowData := NormalizeRow(row)
			if rowData == nil {
				continue
			}

			for rowKey := range rowData {
				if nested, ok := lookup.Find(rowKey); ok {
					add(nested)
				}
			}

			if err := walkContainerData(rowData, lookup, add, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// RowList coerces a container value into its row slice. Non-list values yield
// nil.
func RowList(value any) []any {
	rows, err := utils.AnyToType[[]any](value)
	if err != nil {
		return nil
	}
	return rows
}

// NormalizeRow unwraps the `{data: {...}}` row shape to its inner map. Flat
// map rows pass through; anything else yields nil.
func NormalizeRow(row any) map[string]any {
	rowMap, ok := row.(map[string]any)
	if !ok {
		return nil
	}

	if inner, ok := rowMap["data"].(map[string]any); ok {
		return inner
	}

	return rowMap
}
