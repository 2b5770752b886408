package fieldtypes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/cache"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/resources"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Option source kinds for selectable fields.
const (
	OptionTypeArray        = "array"
	OptionTypeRelationship = "relationship"
)

// RelationDescriptor configures one relationship lookup: fetch rows from
// resource (optionally filtered) and project them into key->label options.
type RelationDescriptor struct {
	Resource      string             `json:"resource" validate:"required"`
	RelationKey   string             `json:"relationKey" validate:"required"`
	RelationValue string             `json:"relationValue" validate:"required"`
	Filters       []resources.Filter `json:"relationValue_filters" validate:"omitempty"`
}

// selectableConfig is the decoded option settings of a selectable field.
type selectableConfig struct {
	OptionType string               `json:"optionType"`
	Options    map[string]any       `json:"options"`
	Relations  []RelationDescriptor `json:"relations"`
}

// OptionsResolver turns a selectable field's config into its key->label
// option map, consulting the resource registry for relationship lookups and a
// TTL cache in front of them.
type OptionsResolver struct {
	registry *resources.Registry
	cache    *cache.OptionsCache
	logger   ectologger.Logger
}

// NewOptionsResolver creates a resolver. cache may be nil to disable caching.
func NewOptionsResolver(registry *resources.Registry, optionsCache *cache.OptionsCache, logger ectologger.Logger) *OptionsResolver {
	return &OptionsResolver{
		registry: registry,
		cache:    optionsCache,
		logger:   logger,
	}
}

// Resolve produces the merged option map for the field config. Array-type
// options are used literally; relationship descriptors are fetched and
// projected, later descriptors overriding earlier keys on collision. A
// descriptor whose resource is unknown or returns zero rows contributes
// nothing.
func (r *OptionsResolver) Resolve(ctx context.Context, cfg models.FieldConfig) (map[string]string, error) {
	parsed, err := utils.ParseArguments[selectableConfig](map[string]any(cfg))
	if err != nil {
		return map[string]string{}, nil
	}

	if parsed.OptionType != OptionTypeRelationship {
		options := make(map[string]string, len(parsed.Options))
		for key, label := range parsed.Options {
			options[key] = fmt.Sprintf("%v", label)
		}
		return options, nil
	}

	merged := map[string]string{}
	for _, relation := range parsed.Relations {
		options, err := r.resolveRelation(ctx, relation)
		if err != nil {
			return nil, err
		}

		for key, label := range options {
			merged[key] = label
		}
	}

	return merged, nil
}

func (r *OptionsResolver) resolveRelation(ctx context.Context, relation RelationDescriptor) (map[string]string, error) {
	key := relationCacheKey(relation)
	if r.cache != nil {
		if options, ok := r.cache.Get(ctx, key); ok {
			return options, nil
		}
	}

	rows, err := r.registry.Query(ctx, relation.Resource, relation.Filters)
	if err != nil {
		return nil, err
	}

	options := map[string]string{}
	for _, row := range rows {
		rowKey, ok := row[relation.RelationKey]
		if !ok {
			continue
		}

		label, ok := row[relation.RelationValue]
		if !ok {
			continue
		}

		options[fmt.Sprintf("%v", rowKey)] = fmt.Sprintf("%v", label)
	}

	if r.cache != nil && len(options) > 0 {
		r.cache.Set(ctx, key, options)
	}

	return options, nil
}

// relationCacheKey fingerprints the descriptor so differently-filtered
// lookups on the same resource cache separately.
func relationCacheKey(relation RelationDescriptor) string {
	raw, _ := json.Marshal(relation)
	sum := sha256.Sum256(raw)
	return relation.Resource + ":" + hex.EncodeToString(sum[:8])
}
