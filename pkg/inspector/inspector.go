// Package inspector exposes per-field-type capability descriptors to the
// configuration UI. Descriptors are static: config keys with their defaults
// plus the settings widgets, read straight off the builder at lookup time.
// Unlike list-building contexts, an unknown type here is a loud error; an
// operator editing a field must see the failure.
package inspector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ramsey-B/fern/pkg/inputs"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/registry"
)

// Descriptor is one field type's capability listing.
type Descriptor struct {
	Key        string                 `json:"key"`
	ConfigKeys []string               `json:"config_keys"`
	Defaults   models.FieldConfig     `json:"defaults"`
	Settings   []inputs.SettingsField `json:"settings"`
}

type Inspector struct {
	registry *registry.Registry
}

func New(registry *registry.Registry) *Inspector {
	return &Inspector{registry: registry}
}

// Inspect returns the descriptor for one field type. Unknown types error.
func (i *Inspector) Inspect(key string) (Descriptor, error) {
	builder, err := i.registry.ResolveStrict(key)
	if err != nil {
		return Descriptor{}, err
	}

	defaults := builder.DefaultConfig()

	configKeys := make([]string, 0, len(defaults))
	for configKey := range defaults {
		configKeys = append(configKeys, configKey)
	}
	sort.Strings(configKeys)

	return Descriptor{
		Key:        builder.Key(),
		ConfigKeys: configKeys,
		Defaults:   defaults,
		Settings:   builder.FormSchema(),
	}, nil
}

// InspectAll returns every registered type's descriptor, sorted by key.
func (i *Inspector) InspectAll() []Descriptor {
	all := i.registry.All()

	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	descriptors := make([]Descriptor, 0, len(keys))
	for _, key := range keys {
		descriptor, err := i.Inspect(key)
		if err != nil {
			continue
		}
		descriptors = append(descriptors, descriptor)
	}

	return descriptors
}

// Verify checks every registered builder's contract: the settings panel keys
// must mirror DefaultConfig exactly. Run at startup so a drifting builder
// fails fast instead of rendering a broken settings panel.
func (i *Inspector) Verify() error {
	var problems []string

	for key, builder := range i.registry.All() {
		defaults := builder.DefaultConfig()

		settingsKeys := map[string]bool{}
		for _, setting := range builder.FormSchema() {
			settingsKeys[setting.Key] = true
		}

		for configKey := range defaults {
			if !settingsKeys[configKey] {
				problems = append(problems, fmt.Sprintf("%s: config key '%s' has no settings field", key, configKey))
			}
		}
		for settingsKey := range settingsKeys {
			if _, ok := defaults[settingsKey]; !ok {
				problems = append(problems, fmt.Sprintf("%s: settings field '%s' has no config default", key, settingsKey))
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("field type form schemas out of sync with defaults: %s", strings.Join(problems, "; "))
	}

	return nil
}
