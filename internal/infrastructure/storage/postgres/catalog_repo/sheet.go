package catalog_repo

import (
	"tutorcenter/internal/domain/catalogs/sheet"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

// SheetRepo implements sheet.Repository.
type SheetRepo struct {
	*BaseCatalogRepo[*sheet.Sheet]
}

var _ sheet.Repository = (*SheetRepo)(nil)

// NewSheetRepo creates a new sheet repository.
func NewSheetRepo(txm *postgres.TxManager) *SheetRepo {
	return &SheetRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			postgres.Table{
				Name:         "sheets",
				Entity:       "sheet",
				SearchCols:   []string{"code", "title"},
				DefaultOrder: "code ASC",
				Columns:      postgres.ExtractDBColumns[sheet.Sheet](),
			},
			func() *sheet.Sheet { return &sheet.Sheet{} },
		),
	}
}
