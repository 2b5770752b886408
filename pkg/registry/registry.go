// Package registry resolves field-type keys to their builders.
//
// Builtin types are matched first against a fixed table; unrecognized keys
// fall through to the custom map, populated once at startup from the
// configured field-type list. Registration is last-write-wins per key and the
// registry is read-only after startup. An unknown key resolves to nil:
// list-building callers skip the field, while the configuration UI path
// (ResolveStrict) surfaces the miss loudly.
package registry

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/fieldtypes"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Deps carries the collaborators builtin builders need.
type Deps struct {
	Options *fieldtypes.OptionsResolver
	Cleaner fieldtypes.ContentCleaner
}

type Registry struct {
	builtins map[string]fieldtypes.Builder
	custom   map[string]fieldtypes.Builder
}

// New constructs a registry with every builtin type wired.
func New(deps Deps) *Registry {
	builtins := []fieldtypes.Builder{
		fieldtypes.NewText(deps.Options),
		fieldtypes.NewTextarea(),
		fieldtypes.NewRichEditor(deps.Cleaner),
		fieldtypes.NewMarkdownEditor(),
		fieldtypes.NewRepeater(),
		fieldtypes.NewBlocks(),
		fieldtypes.NewSelect(deps.Options),
		fieldtypes.NewCheckbox(),
		fieldtypes.NewCheckboxList(deps.Options),
		fieldtypes.NewFileUpload(),
		fieldtypes.NewKeyValue(),
		fieldtypes.NewRadio(deps.Options),
		fieldtypes.NewToggle(),
		fieldtypes.NewColor(),
		fieldtypes.NewDateTime(),
		fieldtypes.NewTags(),
	}

	registry := &Registry{
		builtins: make(map[string]fieldtypes.Builder, len(builtins)),
		custom:   make(map[string]fieldtypes.Builder),
	}

	for _, builder := range builtins {
		registry.builtins[builder.Key()] = builder
	}

	return registry
}

// Register adds a custom builder under a key derived from its concrete type
// name, kebab-cased. Later registrations for the same key overwrite earlier
// ones. The derived key is returned.
func (r *Registry) Register(builder fieldtypes.Builder) string {
	key := DeriveKey(builder)
	r.custom[key] = builder
	return key
}

// Resolve returns the builder for key, builtins first, or nil when the key is
// unknown.
func (r *Registry) Resolve(key string) fieldtypes.Builder {
	if builder, ok := r.builtins[key]; ok {
		return builder
	}
	if builder, ok := r.custom[key]; ok {
		return builder
	}
	return nil
}

// ResolveStrict is Resolve for configuration-UI contexts, where an operator
// editing a field must see the failure instead of a silently skipped type.
func (r *Registry) ResolveStrict(key string) (fieldtypes.Builder, error) {
	builder := r.Resolve(key)
	if builder == nil {
		return nil, errors.NewFormErrorf(errors.KindUnknownFieldType, "field type '%s' is not registered", key)
	}
	return builder, nil
}

// All returns the merged key -> builder view. Builtins win on collision, the
// same precedence Resolve applies, so All()[key] and Resolve(key) agree.
func (r *Registry) All() map[string]fieldtypes.Builder {
	all := make(map[string]fieldtypes.Builder, len(r.builtins)+len(r.custom))
	for key, builder := range r.custom {
		all[key] = builder
	}
	for key, builder := range r.builtins {
		all[key] = builder
	}
	return all
}

// IsContainerType reports whether the key names a container field type.
func IsContainerType(key string) bool {
	return key == models.FieldTypeRepeater || key == models.FieldTypeBuilder
}

// DeriveKey kebab-cases a builder's concrete type base name, e.g.
// *custom.StarRating -> "star-rating". An acronym run stays one segment, so
// HTMLBlock derives "html-block".
func DeriveKey(builder fieldtypes.Builder) string {
	t := reflect.TypeOf(builder)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	name := []rune(t.Name())
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			// break before the first capital of a word: either after a lower
			// rune, or on the last capital of a run followed by a lower rune
			prevLower := i > 0 && !unicode.IsUpper(name[i-1])
			nextLower := i+1 < len(name) && !unicode.IsUpper(name[i+1])
			if i > 0 && (prevLower || (nextLower && unicode.IsUpper(name[i-1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
