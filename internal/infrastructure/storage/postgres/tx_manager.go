package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tutorcenter/internal/core/tx"
	"tutorcenter/pkg/codealloc"
	"tutorcenter/pkg/logger"
)

var tracer = otel.Tracer("tutorcenter/tx")

var (
	_ tx.Manager         = (*TxManager)(nil)
	_ tx.ReadOnlyManager = (*TxManager)(nil)
)

// DefaultStatementTimeout bounds every statement of a transaction.
const DefaultStatementTimeout = 30 * time.Second

// errNoTx is returned by helpers that only make sense inside a transaction.
var errNoTx = errors.New("postgres: no transaction in context")

// TxManager opens read-committed transactions on the pool and keeps the
// active one in the context. Nested calls join the outer transaction, so a
// service may call another service's transactional method.
type TxManager struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// TxManagerOption configures a TxManager.
type TxManagerOption func(*TxManager)

// WithStatementTimeout sets SET LOCAL statement_timeout; 0 disables it.
func WithStatementTimeout(d time.Duration) TxManagerOption {
	return func(m *TxManager) { m.timeout = d }
}

// NewTxManager creates a transaction manager over pool.
func NewTxManager(pool *Pool, opts ...TxManagerOption) *TxManager {
	return NewTxManagerFromRawPool(pool.Pool, opts...)
}

// NewTxManagerFromRawPool is NewTxManager for a bare pgxpool.Pool.
func NewTxManagerFromRawPool(pool *pgxpool.Pool, opts ...TxManagerOption) *TxManager {
	m := &TxManager{pool: pool, timeout: DefaultStatementTimeout}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type txKey struct{}

// Tx is the transaction stored in the context.
type Tx struct {
	pgx.Tx
	readOnly bool
}

// RunInTransaction implements tx.Manager.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, pgx.ReadWrite, fn)
}

// ReadOnly runs fn in a READ ONLY transaction. Inside an existing
// transaction it simply joins it.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, pgx.ReadOnly, fn)
}

func (m *TxManager) run(ctx context.Context, mode pgx.TxAccessMode, fn func(ctx context.Context) error) error {
	if outer := m.GetTx(ctx); outer != nil {
		if outer.readOnly && mode == pgx.ReadWrite {
			return fmt.Errorf("postgres: read-write work inside a read-only transaction")
		}
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.Bool("tx.read_only", mode == pgx.ReadOnly)))
	defer span.End()

	err := m.begin(ctx, mode, fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
	}
	return err
}

func (m *TxManager) begin(ctx context.Context, mode pgx.TxAccessMode, fn func(ctx context.Context) error) error {
	pgTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: mode})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if m.timeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL statement_timeout = %d", m.timeout.Milliseconds())
		if _, err := pgTx.Exec(ctx, stmt); err != nil {
			m.rollback(ctx, pgTx, err)
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	txCtx := context.WithValue(ctx, txKey{}, &Tx{Tx: pgTx, readOnly: mode == pgx.ReadOnly})
	if err := fn(txCtx); err != nil {
		m.rollback(ctx, pgTx, err)
		return err
	}

	if err := pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// rollback survives a cancelled ctx so the connection goes back clean.
func (m *TxManager) rollback(ctx context.Context, pgTx pgx.Tx, cause error) {
	if err := pgTx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Error(ctx, "rollback failed", "error", err, "cause", cause)
	}
}

// GetTx returns the transaction in ctx or nil.
func (m *TxManager) GetTx(ctx context.Context) *Tx {
	t, _ := ctx.Value(txKey{}).(*Tx)
	return t
}

// Querier is satisfied by both the pool and an open transaction, so repos
// work inside and outside RunInTransaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetQuerier returns the transaction in ctx, else the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t := m.GetTx(ctx); t != nil {
		return t.Tx
	}
	return m.pool
}

// AllocatorQuerier hands the active transaction to the code allocator.
// Allocation outside a transaction would release the advisory lock before
// the new row is inserted, so it is refused.
func (m *TxManager) AllocatorQuerier(ctx context.Context) (codealloc.Querier, error) {
	t := m.GetTx(ctx)
	if t == nil {
		return nil, codealloc.ErrNoTransaction
	}
	return t.Tx, nil
}

// Ping checks connectivity for the readiness probe.
func (m *TxManager) Ping(ctx context.Context) error {
	return m.pool.Ping(ctx)
}

// Pool exposes the pool for stats and migrations.
func (m *TxManager) Pool() *pgxpool.Pool {
	return m.pool
}
