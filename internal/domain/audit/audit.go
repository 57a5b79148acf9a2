// Package audit defines how domain services report state changes.
package audit

import (
	"context"
	"fmt"
	"time"

	appctx "tutorcenter/internal/core/context"
	"tutorcenter/internal/core/entity"
	"tutorcenter/internal/core/id"
)

// Action names an audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionClose  Action = "close"
	ActionSubmit Action = "submit"
	ActionAdjust Action = "adjust"
	ActionNotify Action = "notify"
	ActionPay    Action = "pay"
)

// Recorder persists change entries. Implementations must write inside the
// caller's transaction when one is present so the entry commits with the change.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// Nop discards entries.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, string, id.ID, Action, map[string]any) error { return nil }

// Stamp sets UpdatedAt and UpdatedBy from the actor in ctx.
func Stamp(ctx context.Context, r *entity.Record, now time.Time) {
	r.Stamp(now, appctx.GetActor(ctx))
}

// Change is one field of a Diff.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Diff keeps the keys whose values differ between before and after. Values
// are compared by their %v form so decimals and times compare by value.
func Diff(before, after map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range after {
		old, ok := before[k]
		if !ok || fmt.Sprint(old) != fmt.Sprint(v) {
			out[k] = Change{Old: old, New: v}
		}
	}
	for k, old := range before {
		if _, ok := after[k]; !ok {
			out[k] = Change{Old: old}
		}
	}
	return out
}
