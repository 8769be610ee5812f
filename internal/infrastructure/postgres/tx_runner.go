package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// Timeouts por defecto de una unidad de trabajo.
const (
	defaultTxTimeout     = 10 * time.Second
	defaultTxTimeoutLong = 20 * time.Second
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// Los bloqueos de filas los toman los repositorios con SELECT ... FOR UPDATE.
type TxRunner struct {
	pool        *pgxpool.Pool
	timeout     time.Duration
	longTimeout time.Duration
}

// NewTxRunner construye el runner con el pool y los deadlines de transacción (<= 0 usa el valor por defecto).
func NewTxRunner(pool *pgxpool.Pool, timeout, longTimeout time.Duration) *TxRunner {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	if longTimeout <= 0 {
		longTimeout = defaultTxTimeoutLong
	}
	return &TxRunner{pool: pool, timeout: timeout, longTimeout: longTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn inventory.TxFunc) error {
	return r.run(ctx, r.timeout, fn)
}

// RunLong igual que Run con el deadline extendido.
func (r *TxRunner) RunLong(ctx context.Context, fn inventory.TxFunc) error {
	return r.run(ctx, r.longTimeout, fn)
}

func (r *TxRunner) run(parent context.Context, timeout time.Duration, fn inventory.TxFunc) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return timeoutOr(ctx, fmt.Errorf("begin transaction: %w", err))
	}
	// Rollback con contexto propio: el de la tx puede estar vencido.
	defer func() { _ = tx.Rollback(context.WithoutCancel(parent)) }()

	if err := fn(ctx, reposFor(tx)); err != nil {
		return timeoutOr(ctx, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return timeoutOr(ctx, fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// reposFor arma el conjunto de repositorios atados a q.
func reposFor(q Querier) inventory.Repos {
	return inventory.Repos{
		Materials:    NewMaterialRepository(q),
		Lots:         NewStockLotRepository(q),
		Transactions: NewStockTransactionRepository(q),
		Receivings:   NewReceivingRepository(q),
		Issues:       NewIssueRepository(q),
		Opnames:      NewStockOpnameRepository(q),
		Audit:        NewAuditLogRepository(q),
		Idempotency:  NewIdempotencyRepository(q),
	}
}

// timeoutOr traduce un deadline vencido a domain.ErrTimeout; los errores de dominio pasan intactos.
func timeoutOr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}
