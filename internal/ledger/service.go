package ledger

import (
	"context"
	"sync"

	"fjacquet/finanza/internal/ledgererror"
	"fjacquet/finanza/internal/logging"
	"fjacquet/finanza/internal/models"
	"fjacquet/finanza/internal/storage"

	"github.com/shopspring/decimal"
)

// Service owns the mutation path to the record store and republishes an
// immutable HomeState snapshot after every observed change. The store
// serializes concurrent mutations; the service serializes the
// recompute-and-publish step so subscribers never observe a partially
// updated sequence.
type Service struct {
	store  storage.Store
	logger logging.Logger

	mu      sync.Mutex // serializes mutate → recompute → publish
	current HomeState

	subMu sync.RWMutex
	subs  map[chan HomeState]struct{}
}

// NewService creates a ledger service over the given store and primes the
// first snapshot from it.
func NewService(ctx context.Context, store storage.Store, logger logging.Logger) (*Service, error) {
	s := &Service{
		store:  store,
		logger: logger,
		subs:   make(map[chan HomeState]struct{}),
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the latest published snapshot.
func (s *Service) Current() HomeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers a snapshot consumer. The returned channel receives the
// current snapshot immediately and a new one after every mutation. Slow
// consumers are coalesced: if a consumer has not drained the previous
// snapshot, it is replaced by the newer one. Call the returned cancel
// function to unsubscribe.
func (s *Service) Subscribe() (<-chan HomeState, func()) {
	ch := make(chan HomeState, 1)

	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	ch <- s.Current()

	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, ch)
		s.subMu.Unlock()
	}
	return ch, cancel
}

// publish delivers a snapshot to every subscriber, replacing any undrained
// previous snapshot.
func (s *Service) publish(state HomeState) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
}

// storeFailed logs a failed store operation and wraps it for callers.
func (s *Service) storeFailed(op string, err error) error {
	s.logger.WithError(err).Error("Store operation failed",
		logging.Field{Key: logging.FieldOperation, Value: op})
	return &ledgererror.StoreError{Op: op, Err: err}
}

// refresh recomputes the derived state from the full stored set and
// publishes it. s.mu is held across the store read, the recompute and the
// assignment: two concurrent refreshes may not interleave, or the one with
// the older store read could assign last and leave a stale snapshot
// current until the next mutation.
func (s *Service) refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListAll(ctx)
	if err != nil {
		return s.storeFailed("list", err)
	}
	state := ComputeHomeState(txs)
	s.current = state

	s.publish(state)
	s.logger.Debug("Ledger snapshot republished",
		logging.Field{Key: logging.FieldCount, Value: len(state.Entries)})
	return nil
}

// SaveTransaction inserts a transaction and re-derives the snapshot.
func (s *Service) SaveTransaction(ctx context.Context, tx models.Transaction) (int64, error) {
	id, err := s.store.Insert(ctx, tx)
	if err != nil {
		return 0, s.storeFailed("insert", err)
	}
	s.logger.Info("Transaction saved",
		logging.Field{Key: logging.FieldTransactionID, Value: id},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category},
		logging.Field{Key: logging.FieldType, Value: string(tx.Type)},
		logging.Field{Key: logging.FieldAmount, Value: tx.Amount.String()})
	return id, s.refresh(ctx)
}

// UpdateTransaction replaces a stored transaction and re-derives the
// snapshot.
func (s *Service) UpdateTransaction(ctx context.Context, tx models.Transaction) error {
	if err := s.store.Update(ctx, tx); err != nil {
		return s.storeFailed("update", err)
	}
	s.logger.Info("Transaction updated",
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID})
	return s.refresh(ctx)
}

// DeleteTransaction removes a transaction and re-derives the snapshot.
func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.storeFailed("delete", err)
	}
	s.logger.Info("Transaction deleted",
		logging.Field{Key: logging.FieldTransactionID, Value: id})
	return s.refresh(ctx)
}

// GetTransaction returns a single stored transaction.
func (s *Service) GetTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	tx, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, s.storeFailed("get", err)
	}
	return tx, nil
}

// ClearAll removes every transaction and re-derives the snapshot.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return s.storeFailed("clear", err)
	}
	s.logger.Warn("All transactions cleared")
	return s.refresh(ctx)
}

// ImportReplace atomically replaces the full stored set with the given
// transactions (ids reassigned by the store) and re-derives the snapshot.
func (s *Service) ImportReplace(ctx context.Context, txs []models.Transaction) error {
	if err := s.store.ReplaceAll(ctx, txs); err != nil {
		return s.storeFailed("replace", err)
	}
	s.logger.Info("Transaction set replaced from import",
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return s.refresh(ctx)
}

// StoredTotals returns the store-computed income and expense sums. These
// match the snapshot totals; the store path exists so callers that have no
// snapshot in hand can ask the source of truth directly.
func (s *Service) StoredTotals(ctx context.Context) (income, expense decimal.Decimal, err error) {
	income, err = s.store.SumByType(ctx, models.TypeIncome)
	if err != nil {
		return decimal.Zero, decimal.Zero, s.storeFailed("sum income", err)
	}
	expense, err = s.store.SumByType(ctx, models.TypeExpense)
	if err != nil {
		return decimal.Zero, decimal.Zero, s.storeFailed("sum expense", err)
	}
	return income, expense, nil
}
