package inventory

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Materials    repository.MaterialRepository
	Lots         repository.StockLotRepository
	Transactions repository.StockTransactionRepository
	Receivings   repository.ReceivingRepository
	Issues       repository.IssueRepository
	Opnames      repository.StockOpnameRepository
	Audit        repository.AuditLogRepository
	Idempotency  repository.IdempotencyRepository
}

// TxFunc unidad de trabajo. ctx lleva el deadline de la transacción.
type TxFunc func(ctx context.Context, repos Repos) error

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: cualquier error hace rollback completo.
// Al vencer el deadline devuelve domain.ErrTimeout.
type TxRunner interface {
	Run(ctx context.Context, fn TxFunc) error
	// RunLong igual que Run con el timeout extendido (recepciones con muchas líneas).
	RunLong(ctx context.Context, fn TxFunc) error
}

// StockNotifier recibe aviso después de cada commit que modifica stock.
type StockNotifier interface {
	StockChanged(ctx context.Context)
}

type nopNotifier struct{}

func (nopNotifier) StockChanged(context.Context) {}

func notifierOrNop(n StockNotifier) StockNotifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// Ámbitos de las claves de idempotencia.
const (
	ScopeReceiving  = "receiving"
	ScopeIssue      = "issue"
	ScopeAdjustment = "adjustment"
	ScopeOpname     = "opname"
)
