package catalog_repo

import (
	"tutorcenter/internal/domain/catalogs/subject"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

// SubjectRepo implements subject.Repository.
type SubjectRepo struct {
	*BaseCatalogRepo[*subject.Subject]
}

var _ subject.Repository = (*SubjectRepo)(nil)

// NewSubjectRepo creates a new subject repository.
func NewSubjectRepo(txm *postgres.TxManager) *SubjectRepo {
	return &SubjectRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			postgres.Table{
				Name:       "subjects",
				Entity:     "subject",
				SearchCols: []string{"name"},
				Columns:    postgres.ExtractDBColumns[subject.Subject](),
			},
			func() *subject.Subject { return &subject.Subject{} },
		),
	}
}
