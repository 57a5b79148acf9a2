// Package entity holds the row types every table shares: an identity with
// an optimistic-lock version, catalogs that can be deactivated, and records
// stamped with who last changed them.
package entity

import (
	"context"
	"time"

	"tutorcenter/internal/core/id"
)

// Validatable entities check their own invariants without the database.
type Validatable interface {
	Validate(ctx context.Context) error
}

// BaseEntity is the identity plus the version compared on every update.
type BaseEntity struct {
	ID      id.ID `db:"id" json:"id"`
	Version int   `db:"version" json:"version"`
}

func NewBaseEntity() BaseEntity {
	return BaseEntity{ID: id.New(), Version: 1}
}

// SetVersion records the version the database now holds.
func (b *BaseEntity) SetVersion(v int) { b.Version = v }

// Record is an event row: an enrollment, an attendance mark, a sheet update.
type Record struct {
	BaseEntity

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	UpdatedBy string    `db:"updated_by" json:"updatedBy,omitempty"`
}

func NewRecord() Record {
	now := time.Now().UTC()
	return Record{BaseEntity: NewBaseEntity(), CreatedAt: now, UpdatedAt: now}
}

// Stamp moves UpdatedAt. An empty actor keeps the previous UpdatedBy.
func (r *Record) Stamp(now time.Time, actor string) {
	r.UpdatedAt = now
	if actor != "" {
		r.UpdatedBy = actor
	}
}
