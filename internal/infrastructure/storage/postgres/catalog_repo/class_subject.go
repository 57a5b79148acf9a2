package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tutorcenter/internal/domain/catalogs/classsubject"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

const classSubjectTable = "class_subjects"

// ClassSubjectRepo implements classsubject.Repository.
type ClassSubjectRepo struct {
	*BaseCatalogRepo[*classsubject.ClassSubject]
}

var _ classsubject.Repository = (*ClassSubjectRepo)(nil)

// NewClassSubjectRepo creates a new class-subject repository.
func NewClassSubjectRepo(txm *postgres.TxManager) *ClassSubjectRepo {
	return &ClassSubjectRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			postgres.Table{
				Name:         classSubjectTable,
				Entity:       "class_subject",
				DefaultOrder: "updated_at DESC",
				Columns:      postgres.ExtractDBColumns[classsubject.ClassSubject](),
			},
			func() *classsubject.ClassSubject { return &classsubject.ClassSubject{} },
		),
	}
}

func (r *ClassSubjectRepo) listActiveQuery() squirrel.SelectBuilder {
	cols := append(postgres.Qualify("cs", r.Columns),
		"c.name AS class_name",
		"s.name AS subject_name",
		"sh.code AS sheet_code",
		"sh.title AS sheet_title",
		"sh.total_pages",
		"sh.total_questions",
	)
	return postgres.Psql.
		Select(cols...).
		From(classSubjectTable + " cs").
		Join("tutoring_classes c ON c.id = cs.class_id").
		Join("subjects s ON s.id = cs.subject_id").
		LeftJoin("sheets sh ON sh.id = cs.current_sheet_id").
		Where("cs.is_active AND c.is_active AND s.is_active").
		OrderBy("c.name", "s.name")
}

// ListActive returns active mappings of active classes and subjects.
func (r *ClassSubjectRepo) ListActive(ctx context.Context) ([]classsubject.Row, error) {
	sql, args, err := r.listActiveQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []classsubject.Row
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list active class subjects: %w", err)
	}
	return rows, nil
}
