package domain

import "context"

// Hook runs inside a catalog write transaction, before the row is written.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry holds the before-write hooks of one catalog. Services
// register them once at construction.
type HookRegistry[T any] struct {
	beforeCreate []Hook[T]
	beforeUpdate []Hook[T]
}

// NewHookRegistry creates an empty registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{}
}

// OnBeforeCreate registers a hook for inserts. Code allocation goes here so
// its partition lock is held until the row commits.
func (r *HookRegistry[T]) OnBeforeCreate(h Hook[T]) {
	r.beforeCreate = append(r.beforeCreate, h)
}

// OnBeforeUpdate registers a hook for updates.
func (r *HookRegistry[T]) OnBeforeUpdate(h Hook[T]) {
	r.beforeUpdate = append(r.beforeUpdate, h)
}

func runHooks[T any](ctx context.Context, hooks []Hook[T], entity T) error {
	for _, h := range hooks {
		if err := h(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}
