// Package codealloc provides the domain contract for sequential code
// allocation. The implementation lives in pkg/codealloc.
package codealloc

import (
	"context"
	"strconv"
	"time"

	impl "tutorcenter/pkg/codealloc"
)

// Sequence identifies one family of codes.
type Sequence = impl.Sequence

// Sequences in use.
var (
	StudentCode = impl.StudentCode
	SaleRun     = impl.SaleRun
)

// Generator allocates the next code of a sequence within a partition.
// Implementations expect an active transaction in ctx.
type Generator interface {
	Allocate(ctx context.Context, seq Sequence, partition string) (string, error)
}

var _ Generator = (*impl.Service)(nil)

// YearPartition is the two-digit year used to partition student codes.
func YearPartition(t time.Time) string {
	y := t.Year() % 100
	if y < 10 {
		return "0" + strconv.Itoa(y)
	}
	return strconv.Itoa(y)
}

// SaleRunPartition is the per-student prefix for sale run numbers.
// It returns "" when the student has no code yet.
func SaleRunPartition(studentCode string) string {
	if studentCode == "" {
		return ""
	}
	return studentCode + "-"
}
