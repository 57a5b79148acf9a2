package catalog_repo

import (
	"tutorcenter/internal/domain/catalogs/tutoringclass"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

// ClassRepo implements tutoringclass.Repository.
type ClassRepo struct {
	*BaseCatalogRepo[*tutoringclass.TutoringClass]
}

var _ tutoringclass.Repository = (*ClassRepo)(nil)

// NewClassRepo creates a new tutoring class repository.
func NewClassRepo(txm *postgres.TxManager) *ClassRepo {
	return &ClassRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			postgres.Table{
				Name:       "tutoring_classes",
				Entity:     "tutoring_class",
				SearchCols: []string{"name"},
				Columns:    postgres.ExtractDBColumns[tutoringclass.TutoringClass](),
			},
			func() *tutoringclass.TutoringClass { return &tutoringclass.TutoringClass{} },
		),
	}
}
