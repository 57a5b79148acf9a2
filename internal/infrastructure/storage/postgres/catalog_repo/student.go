package catalog_repo

import (
	"tutorcenter/internal/domain/catalogs/student"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

const studentTable = "students"

// StudentRepo implements student.Repository.
type StudentRepo struct {
	*BaseCatalogRepo[*student.Student]
}

var _ student.Repository = (*StudentRepo)(nil)

// NewStudentRepo creates a new student repository.
func NewStudentRepo(txm *postgres.TxManager) *StudentRepo {
	return &StudentRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			postgres.Table{
				Name:         studentTable,
				Entity:       "student",
				SearchCols:   []string{"code", "full_name", "nickname", "parent_phone", "school_name"},
				DefaultOrder: "code ASC",
				Columns:      postgres.ExtractDBColumns[student.Student](),
			},
			func() *student.Student { return &student.Student{} },
		),
	}
}
