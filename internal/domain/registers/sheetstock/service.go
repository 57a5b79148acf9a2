package sheetstock

import (
	"context"
	"fmt"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/audit"
	"tutorcenter/pkg/logger"
)

// Repository defines sheet stock persistence.
type Repository interface {
	// MissingSheetIDs lists active sheets that have no stock row.
	MissingSheetIDs(ctx context.Context) ([]id.ID, error)
	// CreateMany bulk-inserts new rows.
	CreateMany(ctx context.Context, items []*Item) (int64, error)
	GetForUpdateBySheet(ctx context.Context, sheetID id.ID) (*Item, error)
	Update(ctx context.Context, it *Item) error
	// ListActive returns unfinished rows of active sheets by sheet code.
	ListActive(ctx context.Context) ([]*View, error)
	// ListFinished returns finished rows by sheet code.
	ListFinished(ctx context.Context) ([]*View, error)
}

// Lists groups stock rows for display.
type Lists struct {
	Active   []*View `json:"active"`
	Finished []*View `json:"finished"`
}

// Service manages sheet stock.
type Service struct {
	repo    Repository
	txm     tx.Manager
	auditor audit.Recorder
	clock   domain.Clock
}

// NewService creates a new sheet stock service.
func NewService(repo Repository, txm tx.Manager, auditor audit.Recorder, clock domain.Clock) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{repo: repo, txm: txm, auditor: auditor, clock: clock}
}

// EnsureAll creates stock rows for active sheets that have none and returns
// how many were created.
func (s *Service) EnsureAll(ctx context.Context) (int64, error) {
	var created int64
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		missing, err := s.repo.MissingSheetIDs(ctx)
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			return nil
		}

		now := s.clock.Now().UTC()
		items := make([]*Item, len(missing))
		for i, sheetID := range missing {
			items[i] = NewItem(sheetID, now)
		}
		created, err = s.repo.CreateMany(ctx, items)
		if err != nil {
			return fmt.Errorf("create stock rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if created > 0 {
		logger.Info(ctx, "sheet stock rows created", "count", created)
	}
	return created, nil
}

// Apply adjusts the stock of a sheet under a row lock.
func (s *Service) Apply(ctx context.Context, sheetID id.ID, action Action, amount int) (*Item, error) {
	var out *Item
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdateBySheet(ctx, sheetID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("sheet_inventory", sheetID.String())
			}
			return err
		}

		next, err := Adjust(*current, action, amount, s.clock.Now().UTC())
		if err != nil {
			return err
		}
		if err := s.repo.Update(ctx, &next); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		out = &next

		return s.auditor.Record(ctx, "sheet_inventory", next.ID, audit.ActionAdjust, map[string]any{
			"action":      action,
			"amount":      amount,
			"quantity":    next.Quantity,
			"is_finished": next.IsFinished,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns active and finished stock rows.
func (s *Service) List(ctx context.Context) (*Lists, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	finished, err := s.repo.ListFinished(ctx)
	if err != nil {
		return nil, err
	}
	return &Lists{Active: active, Finished: finished}, nil
}
