package postgres

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/squirrel"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/domain/filter"
)

// Psql is the squirrel builder for pgx placeholders.
var Psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// conditions maps the comparison operators onto squirrel expressions.
// Contains and the null checks are handled in ApplyFilters.
var conditions = map[filter.ComparisonType]func(col string, v any) squirrel.Sqlizer{
	filter.Equal:          func(c string, v any) squirrel.Sqlizer { return squirrel.Eq{c: v} },
	filter.InList:         func(c string, v any) squirrel.Sqlizer { return squirrel.Eq{c: v} },
	filter.NotEqual:       func(c string, v any) squirrel.Sqlizer { return squirrel.NotEq{c: v} },
	filter.NotInList:      func(c string, v any) squirrel.Sqlizer { return squirrel.NotEq{c: v} },
	filter.Less:           func(c string, v any) squirrel.Sqlizer { return squirrel.Lt{c: v} },
	filter.LessOrEqual:    func(c string, v any) squirrel.Sqlizer { return squirrel.LtOrEq{c: v} },
	filter.Greater:        func(c string, v any) squirrel.Sqlizer { return squirrel.Gt{c: v} },
	filter.GreaterOrEqual: func(c string, v any) squirrel.Sqlizer { return squirrel.GtOrEq{c: v} },
}

// ApplyFilters adds one WHERE condition per item. Fields outside allowed are
// rejected so column names never come from user input unchecked.
func ApplyFilters(q squirrel.SelectBuilder, allowed []string, items []filter.Item) (squirrel.SelectBuilder, error) {
	for _, it := range items {
		if !slices.Contains(allowed, it.Field) {
			return q, apperror.NewValidation("invalid filter column").WithDetail("field", it.Field)
		}

		switch it.Operator {
		case filter.IsNull:
			q = q.Where(squirrel.Eq{it.Field: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{it.Field: nil})
		case filter.Contains:
			q = q.Where(squirrel.ILike{it.Field: fmt.Sprintf("%%%v%%", it.Value)})
		case filter.NotContains:
			q = q.Where(squirrel.NotILike{it.Field: fmt.Sprintf("%%%v%%", it.Value)})
		default:
			cond, ok := conditions[it.Operator]
			if !ok {
				return q, apperror.NewValidation("invalid filter operator").WithDetail("operator", string(it.Operator))
			}
			q = q.Where(cond(it.Field, it.Value))
		}
	}
	return q, nil
}

// Search matches term against every column with ILIKE. A blank term or no
// columns leaves q unchanged.
func Search(q squirrel.SelectBuilder, cols []string, term string) squirrel.SelectBuilder {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return q
	}
	or := make(squirrel.Or, len(cols))
	for i, c := range cols {
		or[i] = squirrel.ILike{c: "%" + term + "%"}
	}
	return q.Where(or)
}

// OrderBy turns "col", "+col" or "-col" into an ORDER BY term. Blank input
// yields def.
func OrderBy(raw string, allowed []string, def string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	field, dir := raw, "ASC"
	switch raw[0] {
	case '-':
		field, dir = raw[1:], "DESC"
	case '+':
		field = raw[1:]
	}
	field = strings.TrimSpace(field)
	if field == "" || !slices.Contains(allowed, field) {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", raw)
	}
	return field + " " + dir, nil
}

// UpdateSQL builds a version-checked UPDATE for entity. Every tagged column
// in cols is written except id, version and the fixed ones; version is
// bumped in SQL. It also returns the version the row must still have.
func UpdateSQL(table string, cols []string, entity any, fixed ...string) (string, []any, int, error) {
	data := StructToMap(entity)
	key, ok := data["id"]
	if !ok {
		return "", nil, 0, fmt.Errorf("%s: entity has no id column", table)
	}
	version, ok := data["version"].(int)
	if !ok {
		return "", nil, 0, fmt.Errorf("%s: entity has no int version column", table)
	}

	set := make(map[string]any, len(cols))
	for _, c := range Without(cols, append([]string{"id", "version"}, fixed...)...) {
		if v, ok := data[c]; ok {
			set[c] = v
		}
	}

	sql, args, err := Psql.Update(table).
		SetMap(set).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": key}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return "", nil, 0, fmt.Errorf("build %s update: %w", table, err)
	}
	return sql, args, version, nil
}
