package utils

import "strings"

// AssignMapValue writes value into a nested map at the dot-separated path,
// creating intermediate maps as needed.
func AssignMapValue(targetRaw map[string]any, path string, value any) map[string]any {
	if path == "" {
		return targetRaw
	}

	paths := strings.Split(path, ".")

	if len(paths) == 1 {
		targetRaw[paths[0]] = value
		return targetRaw
	}

	existingValue, ok := targetRaw[paths[0]].(map[string]any)
	if !ok {
		existingValue = make(map[string]any)
	}

	result := AssignMapValue(existingValue, strings.Join(paths[1:], "."), value)

	targetRaw[paths[0]] = result

	return targetRaw
}

// ReadMapValue resolves a dot-separated path into a nested map. The second
// return reports whether every segment resolved.
func ReadMapValue(data map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	parts := strings.Split(path, ".")

	var current any = data
	for _, part := range parts {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = asMap[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// IsBlankValue reports generic blankness: nil, empty string, empty slice or
// empty map. False and 0 are not blank.
func IsBlankValue(value any) bool {
	if value == nil {
		return true
	}

	switch v := value.(type) {
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	return false
}
