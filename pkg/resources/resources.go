// Package resources resolves relationship-option lookups for selectable
// fields. A process-wide registry maps resource keys to data sources; the
// sqlx-backed TableSource covers database-backed resources with filter
// pushdown.
package resources

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Filter is one (column, operator, value) restriction on a resource lookup.
type Filter struct {
	Column   string `json:"column" validate:"required"`
	Operator string `json:"operator" validate:"required,oneof== != > < >= <= like in"`
	Value    any    `json:"value" validate:"omitempty"`
}

// Source fetches rows for one resource.
type Source interface {
	Query(ctx context.Context, filters []Filter) ([]map[string]any, error)
}

// Registry resolves resource keys to data sources.
type Registry struct {
	sources map[string]Source
}

func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register maps a resource key to a source. Last registration wins per key.
func (r *Registry) Register(resource string, source Source) {
	r.sources[resource] = source
}

// Query resolves the resource and fetches matching rows. An unknown resource
// contributes nothing: it returns no rows and no error.
func (r *Registry) Query(ctx context.Context, resource string, filters []Filter) ([]map[string]any, error) {
	source, ok := r.sources[resource]
	if !ok {
		return nil, nil
	}

	return source.Query(ctx, filters)
}

// TableSource is a Source over one database table.
type TableSource struct {
	db     database.DB
	table  string
	logger ectologger.Logger
}

func NewTableSource(db database.DB, table string, logger ectologger.Logger) *TableSource {
	return &TableSource{
		db:     db,
		table:  table,
		logger: logger,
	}
}

func (s *TableSource) Query(ctx context.Context, filters []Filter) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "TableSource.Query")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("*").From(s.table)

	for _, filter := range filters {
		switch filter.Operator {
		case "=":
			sb.Where(sb.Equal(filter.Column, filter.Value))
		case "!=":
			sb.Where(sb.NotEqual(filter.Column, filter.Value))
		case ">":
			sb.Where(sb.GreaterThan(filter.Column, filter.Value))
		case "<":
			sb.Where(sb.LessThan(filter.Column, filter.Value))
		case ">=":
			sb.Where(sb.GreaterEqualThan(filter.Column, filter.Value))
		case "<=":
			sb.Where(sb.LessEqualThan(filter.Column, filter.Value))
		case "like":
			sb.Where(sb.Like(filter.Column, filter.Value))
		case "in":
			if list, ok := filter.Value.([]any); ok {
				sb.Where(sb.In(filter.Column, list...))
			}
		}
	}

	sql, args := sb.Build()

	rows, err := s.db.QueryxContext(ctx, sql, args...)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithField("table", s.table).Error("error querying resource table")
		return nil, err
	}
	defer rows.Close()

	results := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
