package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/filter"
)

var testCols = []string{"id", "version", "is_active", "code", "name"}

func testRows() *Rows[*testRow] {
	return NewRows(nil, Table{
		Name:         "test_table",
		Entity:       "test",
		Columns:      testCols,
		SearchCols:   []string{"name", "code"},
		DefaultOrder: "name ASC",
	}, func() *testRow { return &testRow{} })
}

type testRow struct {
	ID       id.ID  `db:"id"`
	Version  int    `db:"version"`
	IsActive bool   `db:"is_active"`
	Code     string `db:"code"`
	Name     string `db:"name"`
}

func TestApplyFilters_Operators(t *testing.T) {
	const base = "SELECT id, version, is_active, code, name FROM test_table WHERE "

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{"greater", filter.Item{Field: "version", Operator: filter.Greater, Value: 10}, base + "version > $1", []any{10}},
		{"less or equal", filter.Item{Field: "version", Operator: filter.LessOrEqual, Value: 5}, base + "version <= $1", []any{5}},
		{"in", filter.Item{Field: "code", Operator: filter.InList, Value: []string{"A", "B"}}, base + "code IN ($1,$2)", []any{"A", "B"}},
		{"contains", filter.Item{Field: "name", Operator: filter.Contains, Value: "math"}, base + "name ILIKE $1", []any{"%math%"}},
		{"is null", filter.Item{Field: "code", Operator: filter.IsNull}, base + "code IS NULL", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRows()
			q, err := ApplyFilters(r.Select(), r.Columns, []filter.Item{tt.item})
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestApplyFilters_Rejects(t *testing.T) {
	r := testRows()

	_, err := ApplyFilters(r.Select(), r.Columns, []filter.Item{
		{Field: "password; DROP TABLE x", Operator: filter.Equal, Value: 1},
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = ApplyFilters(r.Select(), r.Columns, []filter.Item{
		{Field: "code", Operator: "like", Value: "x"},
	})
	assert.True(t, apperror.IsAppError(err))
}

func TestListQuery_SearchAndActive(t *testing.T) {
	active := true

	q, err := testRows().ListQuery(domain.ListFilter{Search: " ab ", IsActive: &active})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, version, is_active, code, name FROM test_table WHERE (name ILIKE $1 OR code ILIKE $2) AND is_active = $3",
		sql)
	assert.Equal(t, []any{"%ab%", "%ab%", true}, args)
}

func TestOrderBy(t *testing.T) {
	got, err := OrderBy("", testCols, "name ASC")
	require.NoError(t, err)
	assert.Equal(t, "name ASC", got)

	got, err = OrderBy("-code", testCols, "name ASC")
	require.NoError(t, err)
	assert.Equal(t, "code DESC", got)

	got, err = OrderBy("+version", testCols, "name ASC")
	require.NoError(t, err)
	assert.Equal(t, "version ASC", got)

	_, err = OrderBy("-", testCols, "name ASC")
	assert.Error(t, err)

	_, err = OrderBy("secret", testCols, "name ASC")
	assert.Error(t, err)
}

func TestUpdateSQL_OptimisticLock(t *testing.T) {
	key := id.New()

	sql, args, version, err := UpdateSQL("test_table", []string{"id", "version", "code"}, &testRow{ID: key, Version: 3, Code: "A1"})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE test_table SET code = $1, version = version + 1 WHERE id = $2 AND version = $3", sql)
	assert.Equal(t, []any{"A1", key.String(), 3}, args)
	assert.Equal(t, 3, version)
}

func TestUpdateSQL_SkipsFixedColumns(t *testing.T) {
	sql, _, _, err := UpdateSQL("test_table", testCols, &testRow{ID: id.New(), Version: 1, Code: "A1", Name: "x"}, "code")
	require.NoError(t, err)

	assert.NotContains(t, sql, "code =")
	assert.Contains(t, sql, "name = ")
}

func TestUpdateSQL_NeedsVersion(t *testing.T) {
	_, _, _, err := UpdateSQL("t", []string{"id"}, &struct {
		ID id.ID `db:"id"`
	}{ID: id.New()})
	assert.Error(t, err)
}
