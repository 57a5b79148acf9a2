// Package sheetstock tracks how many printed copies of each sheet are left.
package sheetstock

import (
	"time"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
)

// Item is the stock row of one sheet.
type Item struct {
	entity.BaseEntity

	SheetID    id.ID      `db:"sheet_id" json:"sheetId"`
	Quantity   int        `db:"quantity" json:"quantity"`
	IsFinished bool       `db:"is_finished" json:"isFinished"`
	FinishedAt *time.Time `db:"finished_at" json:"finishedAt,omitempty"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// NewItem creates an empty, unfinished stock row for a sheet.
func NewItem(sheetID id.ID, now time.Time) *Item {
	return &Item{
		BaseEntity: entity.NewBaseEntity(),
		SheetID:    sheetID,
		UpdatedAt:  now,
	}
}

// View is a stock row with its sheet and subject for listing.
type View struct {
	Item

	SheetCode   string `db:"sheet_code" json:"sheetCode"`
	SheetTitle  string `db:"sheet_title" json:"sheetTitle"`
	SubjectName string `db:"subject_name" json:"subjectName"`
}

// Action is a stock adjustment.
type Action string

const (
	ActionInc      Action = "inc"
	ActionDec      Action = "dec"
	ActionSet      Action = "set"
	ActionFinish   Action = "finish"
	ActionUnfinish Action = "unfinish"
)

// Adjust applies action to a copy of it and normalizes the result. For inc
// and dec a non-positive amount counts as 1; set uses amount as is.
func Adjust(it Item, action Action, amount int, now time.Time) (Item, error) {
	step := amount
	if step <= 0 {
		step = 1
	}

	switch action {
	case ActionInc:
		it.Quantity += step
	case ActionDec:
		it.Quantity -= step
	case ActionSet:
		it.Quantity = amount
	case ActionFinish:
		it.IsFinished = true
	case ActionUnfinish:
		it.IsFinished = false
	default:
		return it, apperror.NewValidation("unknown inventory action").
			WithDetail("field", "action").
			WithDetail("value", string(action))
	}

	return Normalize(it, now), nil
}

// Normalize keeps quantity at zero or above, stamps finished_at on the first
// finish and clears it on unfinish. Returns a new value.
func Normalize(it Item, now time.Time) Item {
	if it.Quantity < 0 {
		it.Quantity = 0
	}
	switch {
	case it.IsFinished && it.FinishedAt == nil:
		t := now
		it.FinishedAt = &t
	case !it.IsFinished:
		it.FinishedAt = nil
	}
	it.UpdatedAt = now
	return it
}
