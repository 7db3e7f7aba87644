package inventory_test

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore base en memoria. Run toma el mutex durante toda la transacción (equivale al
// bloqueo de fila) y trabaja sobre una copia que solo se publica si fn no falla.
type memStore struct {
	mu       sync.Mutex
	products map[int64]entity.Product
	txns     []entity.StockTransaction
	failTxn  error // si no es nil, Create de movimientos falla
}

func newMemStore(products ...entity.Product) *memStore {
	s := &memStore{products: map[int64]entity.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) Run(ctx context.Context, fn func(repository.ProductRepository, repository.StockTransactionRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memTx{store: s, products: make(map[int64]entity.Product, len(s.products)), txns: append([]entity.StockTransaction(nil), s.txns...)}
	for k, v := range s.products {
		tx.products[k] = v
	}
	if err := fn(memProducts{tx}, memTxns{tx}); err != nil {
		return err
	}
	s.products, s.txns = tx.products, tx.txns
	return nil
}

func (s *memStore) product(id int64) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id]
}

func (s *memStore) transactions() []entity.StockTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockTransaction(nil), s.txns...)
}

// reader repos fuera de transacción (para GetTransaction/ListTransactions).
func (s *memStore) reader() repository.StockTransactionRepository {
	return memReader{s}
}

type memTx struct {
	store    *memStore
	products map[int64]entity.Product
	txns     []entity.StockTransaction
}

type memProducts struct{ tx *memTx }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	p.ID = int64(len(r.tx.products) + 1)
	r.tx.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.tx.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.tx.products[p.ID] = *p
	return nil
}

func (r memProducts) UpdateStock(_ context.Context, id int64, stock decimal.Decimal) error {
	p := r.tx.products[id]
	p.CurrentStock = stock
	r.tx.products[id] = p
	return nil
}

func (r memProducts) List(context.Context, bool, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	delete(r.tx.products, id)
	return nil
}

type memTxns struct{ tx *memTx }

func (r memTxns) Create(_ context.Context, t *entity.StockTransaction) error {
	if r.tx.store.failTxn != nil {
		return r.tx.store.failTxn
	}
	t.ID = int64(len(r.tx.txns) + 1)
	r.tx.txns = append(r.tx.txns, *t)
	return nil
}

func (r memTxns) GetByID(_ context.Context, id int64) (*entity.StockTransaction, error) {
	for _, t := range r.tx.txns {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r memTxns) List(context.Context, repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	out := make([]*entity.StockTransaction, 0, len(r.tx.txns))
	for i := range r.tx.txns {
		out = append(out, &r.tx.txns[i])
	}
	return out, nil
}

func (r memTxns) CountByProduct(_ context.Context, productID int64) (int64, error) {
	var n int64
	for _, t := range r.tx.txns {
		if t.ProductID == productID {
			n++
		}
	}
	return n, nil
}

type memReader struct{ s *memStore }

func (r memReader) view() memTxns {
	return memTxns{&memTx{store: r.s, txns: r.s.transactions()}}
}

func (r memReader) Create(ctx context.Context, t *entity.StockTransaction) error {
	return r.view().Create(ctx, t)
}

func (r memReader) GetByID(ctx context.Context, id int64) (*entity.StockTransaction, error) {
	return r.view().GetByID(ctx, id)
}

func (r memReader) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	return r.view().List(ctx, f)
}

func (r memReader) CountByProduct(ctx context.Context, id int64) (int64, error) {
	return r.view().CountByProduct(ctx, id)
}

// recordingNotifier guarda los eventos recibidos.
type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.StockTransaction
}

func (n *recordingNotifier) StockChanged(_ *entity.Product, txn *entity.StockTransaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, *txn)
}
