// Package codealloc issues human-readable sequential codes such as student
// codes (25001) and sale run numbers (25001-02).
//
// There is no counter table. Each allocation recomputes the maximum from the
// codes already persisted under the partition prefix, so the result is safe
// across restarts and across processes. Allocation must run inside the
// transaction that inserts the owning row:
//
//  1. pg_advisory_xact_lock on table:column:partition serializes allocators,
//     including on a partition that has no rows yet;
//  2. the greatest code with the prefix is read FOR UPDATE;
//  3. the caller inserts the new row and commits, which releases the lock.
//
// The unique index on the column is the final guard. A violation surfaces to
// the caller as a constraint error; nothing here retries.
package codealloc

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/pkg/logger"
)

var tracer = otel.Tracer("tutorcenter/codealloc")

// ErrNoTransaction is returned when Allocate is called outside a transaction.
var ErrNoTransaction = errors.New("codealloc: allocation requires an active transaction")

// Querier is the subset of pgx.Tx the allocator needs.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Resolver returns the querier bound to the transaction carried by ctx.
// It must fail with ErrNoTransaction when ctx has no transaction.
type Resolver func(ctx context.Context) (Querier, error)

// Sequence describes where codes of one kind live.
type Sequence struct {
	// Name labels metrics and logs.
	Name   string
	Table  string
	Column string
	// Width is the zero-padded digit count of the numeric suffix.
	Width int
}

var (
	// StudentCode numbers students per two-digit year: 25001, 25002, ...
	StudentCode = Sequence{Name: "student_code", Table: "students", Column: "code", Width: 3}

	// SaleRun numbers a student's enrollments: 25001-01, 25001-02, ...
	SaleRun = Sequence{Name: "sale_run_no", Table: "enrollments", Column: "sale_run_no", Width: 2}
)

// Observer receives one call per successful allocation.
type Observer interface {
	ObserveAllocation(sequence string, fallback bool)
}

// Service allocates codes.
type Service struct {
	resolve  Resolver
	observer Observer
}

// Option configures Service.
type Option func(*Service)

// WithObserver attaches metrics.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// New creates an allocator that takes its querier from resolve.
func New(resolve Resolver, opts ...Option) *Service {
	s := &Service{resolve: resolve}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allocate returns the next free code for partition.
func (s *Service) Allocate(ctx context.Context, seq Sequence, partition string) (string, error) {
	if partition == "" {
		return "", apperror.NewValidation("code partition is empty").
			WithDetail("sequence", seq.Name)
	}
	if seq.Width <= 0 || seq.Table == "" || seq.Column == "" {
		return "", fmt.Errorf("codealloc: invalid sequence %q", seq.Name)
	}

	ctx, span := tracer.Start(ctx, "codealloc.Allocate",
		trace.WithAttributes(
			attribute.String("codealloc.sequence", seq.Name),
			attribute.String("codealloc.partition", partition),
		))
	defer span.End()

	q, err := s.resolve(ctx)
	if err != nil {
		return "", err
	}

	if _, err := q.Exec(ctx, lockSQL, LockKey(seq, partition)); err != nil {
		return "", fmt.Errorf("lock partition %s: %w", partition, err)
	}

	last, err := s.lastCode(ctx, q, seq, partition)
	if err != nil {
		return "", err
	}

	next, ok := Next(last, seq.Width)
	if !ok {
		logger.Warn(ctx, "unparsable code suffix, restarting sequence at 1",
			"sequence", seq.Name,
			"partition", partition,
			"last_code", last,
		)
	}
	if next > Capacity(seq.Width) {
		return "", apperror.NewBusinessRule(apperror.CodeBusinessRule, "code partition is exhausted").
			WithDetail("sequence", seq.Name).
			WithDetail("partition", partition).
			WithDetail("last_code", last)
	}

	if s.observer != nil {
		s.observer.ObserveAllocation(seq.Name, !ok)
	}

	return Format(partition, next, seq.Width), nil
}

const lockSQL = "SELECT pg_advisory_xact_lock(hashtext($1))"

// LockKey is the advisory lock key for a partition.
func LockKey(seq Sequence, partition string) string {
	return seq.Table + ":" + seq.Column + ":" + partition
}

// LastCodeQuery builds the read-max statement.
func LastCodeQuery(seq Sequence, partition string) (string, []any, error) {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(seq.Column).
		From(seq.Table).
		Where(squirrel.Like{seq.Column: likePrefix(partition)}).
		OrderBy(seq.Column + " DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
}

func (s *Service) lastCode(ctx context.Context, q Querier, seq Sequence, partition string) (string, error) {
	sql, args, err := LastCodeQuery(seq, partition)
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var last string
	if err := q.QueryRow(ctx, sql, args...).Scan(&last); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("read last %s: %w", seq.Name, err)
	}
	return last, nil
}
