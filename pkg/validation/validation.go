// Package validation translates declarative validation-rule descriptors into
// constraints on a built input. Constraints compile to a go-playground
// validator tag expression; enforcement happens wherever the input's value is
// checked (form submit, API validation).
package validation

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// translations maps descriptor rule names to validator tags. Rules that take a
// value format it into the tag parameter.
var translations = map[string]func(value any) string{
	"required":     func(any) string { return "required" },
	"email":        func(any) string { return "email" },
	"url":          func(any) string { return "url" },
	"uuid":         func(any) string { return "uuid" },
	"alpha":        func(any) string { return "alpha" },
	"alpha_num":    func(any) string { return "alphanum" },
	"numeric":      func(any) string { return "numeric" },
	"min":          func(value any) string { return fmt.Sprintf("min=%v", value) },
	"max":          func(value any) string { return fmt.Sprintf("max=%v", value) },
	"min_length":   func(value any) string { return fmt.Sprintf("min=%v", value) },
	"max_length":   func(value any) string { return fmt.Sprintf("max=%v", value) },
	"greater_than": func(value any) string { return fmt.Sprintf("gt=%v", value) },
	"less_than":    func(value any) string { return fmt.Sprintf("lt=%v", value) },
	"in": func(value any) string {
		list, ok := value.(string)
		if !ok {
			return ""
		}
		return "oneof=" + strings.Join(strings.Fields(strings.ReplaceAll(list, ",", " ")), " ")
	},
}

// Apply compiles the rule descriptors onto the input's ValidationTag. Unknown
// rules are skipped; a descriptor whose translation comes up empty contributes
// nothing.
func Apply(input *inputs.Input, ruleList []models.ValidationRule) {
	tags := []string{}

	for _, rule := range ruleList {
		translate, ok := translations[rule.Rule]
		if !ok {
			continue
		}

		if tag := translate(rule.Value); tag != "" {
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		return
	}

	input.ValidationTag = strings.Join(tags, ",")
}

// Check validates a submitted value against the input's compiled constraints.
func Check(input inputs.Input, value any) error {
	if input.ValidationTag == "" {
		return nil
	}
	return utils.ValidateValue(value, input.ValidationTag)
}
