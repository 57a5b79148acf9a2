package domain

import (
	"context"
	"fmt"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/core/tx"
)

// CatalogService is the CRUD service shared by every catalog. Create and
// Update validate first, then run the before-hooks and the write in one
// transaction.
type CatalogService[T entity.Validatable] struct {
	repo       CatalogRepository[T]
	txManager  tx.Manager
	hooks      *HookRegistry[T]
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T entity.Validatable] struct {
	Repo      CatalogRepository[T]
	TxManager tx.Manager
	// EntityName appears in NOT_FOUND errors and wrapped causes.
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Validatable](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the registry embedding services add their hooks to.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// NormalizeGetErr names the entity in a repository lookup error. Anything
// that is not an application error becomes INTERNAL_ERROR.
func (s *CatalogService[T]) NormalizeGetErr(err error, key any) error {
	switch {
	case err == nil:
		return nil
	case apperror.IsNotFound(err):
		return apperror.NewNotFound(s.entityName, key)
	case apperror.IsAppError(err):
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", key)
}

func validate[T entity.Validatable](ctx context.Context, e T) error {
	err := e.Validate(ctx)
	if err == nil || apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

// Create validates and inserts e.
func (s *CatalogService[T]) Create(ctx context.Context, e T) error {
	if err := validate(ctx, e); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := runHooks(ctx, s.hooks.beforeCreate, e); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
}

// GetByID returns the entity or NOT_FOUND.
func (s *CatalogService[T]) GetByID(ctx context.Context, key id.ID) (T, error) {
	e, err := s.repo.GetByID(ctx, key)
	if err != nil {
		return e, s.NormalizeGetErr(err, key.String())
	}
	return e, nil
}

// Update validates and rewrites e. A stale version fails with
// CONCURRENT_MODIFICATION.
func (s *CatalogService[T]) Update(ctx context.Context, e T) error {
	if err := validate(ctx, e); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := runHooks(ctx, s.hooks.beforeUpdate, e); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
}

// Delete removes the entity. Unknown ids are NOT_FOUND; referenced rows
// are CONFLICT.
func (s *CatalogService[T]) Delete(ctx context.Context, key id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, key); err != nil {
			return s.NormalizeGetErr(err, key.String())
		}
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
}

// List returns one page of entities.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists reports whether key is stored.
func (s *CatalogService[T]) Exists(ctx context.Context, key id.ID) (bool, error) {
	return s.repo.Exists(ctx, key)
}
