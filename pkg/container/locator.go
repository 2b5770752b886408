package container

import "github.com/Ramsey-B/fern/pkg/models"

// PathSegment is one hop into a container value: which container, which row.
// TreeKey is the key the container's row list sits under in the value tree
// (ULID or slug, whichever the data uses).
type PathSegment struct {
	ContainerULID string
	TreeKey       string
	Row           int
}

// Location describes where inside a container tree a field's value lives.
// Found is false when the field is not inside any container, which callers
// use to pick flat mutation over path-scoped mutation.
type Location struct {
	Path  []PathSegment
	Key   string
	Found bool
}

// Locate searches the record's container values depth-first for the row
// holding target's value, returning the (container, rowIndex) path and the
// key (ULID preferred, slug fallback) it is stored under. A miss returns the
// zero Location, never an error.
func Locate(record models.Record, target models.Field) Location {
	lookup := record.FieldDefinitions().Flatten()
	return LocateIn(record.ValueTree(), lookup, target)
}

// LocateIn is Locate over an arbitrary value tree, for callers searching
// submitted form data instead of stored values.
func LocateIn(values map[string]any, lookup models.Fields, target models.Field) Location {
	return locateIn(values, lookup, target, nil, 0)
}

func locateIn(values map[string]any, lookup models.Fields, target models.Field, path []PathSegment, depth int) Location {
	if depth > MaxDepth {
		return Location{}
	}

	for key, value := range values {
		field, ok := lookup.Find(key)
		if !ok || !field.IsContainer() {
			continue
		}

		for rowIndex, row := range RowList(value) {
			rowData := NormalizeRow(row)
			if rowData == nil {
				continue
			}

			segment := PathSegment{ContainerULID: field.ULID, TreeKey: key, Row: rowIndex}
			rowPath := append(append([]PathSegment{}, path...), segment)

			if _, ok := rowData[target.ULID]; ok {
				return Location{Path: rowPath, Key: target.ULID, Found: true}
			}
			if target.Slug != "" {
				if _, ok := rowData[target.Slug]; ok {
					return Location{Path: rowPath, Key: target.Slug, Found: true}
				}
			}

			if nested := locateIn(rowData, lookup, target, rowPath, depth+1); nested.Found {
				return nested
			}
		}
	}

	return Location{}
}

// RowAt follows a location path through the value tree to the row map it
// names. ok is false when the tree no longer matches the path.
func RowAt(values map[string]any, path []PathSegment) (map[string]any, bool) {
	current := values
	for _, segment := range path {
		rows := RowList(current[segment.TreeKey])
		if segment.Row < 0 || segment.Row >= len(rows) {
			return nil, false
		}
		row := NormalizeRow(rows[segment.Row])
		if row == nil {
			return nil, false
		}
		current = row
	}
	return current, true
}
