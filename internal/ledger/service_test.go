package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"fjacquet/finanza/internal/ledgererror"
	"fjacquet/finanza/internal/logging"
	"fjacquet/finanza/internal/models"
	"fjacquet/finanza/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc, err := NewService(context.Background(), store, &logging.MockLogger{})
	require.NoError(t, err)
	return svc
}

func TestServiceMutationsRederiveSnapshot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.SaveTransaction(ctx, mk("100", models.TypeIncome, 1000))
	require.NoError(t, err)
	_, err = svc.SaveTransaction(ctx, mk("40", models.TypeExpense, 2000))
	require.NoError(t, err)

	state := svc.Current()
	require.Len(t, state.Entries, 2)
	assert.Equal(t, "60", state.Entries[1].Balance.String())

	// Edit the income down; balances re-derive from scratch.
	edited := mk("50", models.TypeIncome, 1000)
	edited.ID = id
	require.NoError(t, svc.UpdateTransaction(ctx, edited))
	state = svc.Current()
	assert.Equal(t, "10", state.Entries[1].Balance.String())

	require.NoError(t, svc.DeleteTransaction(ctx, id))
	state = svc.Current()
	require.Len(t, state.Entries, 1)
	assert.Equal(t, "-40", state.Entries[0].Balance.String())

	require.NoError(t, svc.ClearAll(ctx))
	assert.Empty(t, svc.Current().Entries)
}

func TestServiceSaveLogsStructuredFields(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mock := &logging.MockLogger{}
	svc, err := NewService(context.Background(), store, mock)
	require.NoError(t, err)

	_, err = svc.SaveTransaction(context.Background(), mk("12.50", models.TypeExpense, 1000))
	require.NoError(t, err)

	var found bool
	for _, entry := range mock.Entries {
		if entry.Message != "Transaction saved" {
			continue
		}
		for _, f := range entry.Fields {
			if f.Key == logging.FieldAmount {
				assert.Equal(t, "12.5", f.Value)
				found = true
			}
		}
	}
	assert.True(t, found, "save log should carry the amount field")
}

// Concurrent mutations must never leave a stale snapshot current: whichever
// refresh assigns last must have read the store after every completed
// mutation, so the final snapshot contains every saved entry.
func TestServiceConcurrentSavesYieldCompleteSnapshot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const savers = 16
	var wg sync.WaitGroup
	wg.Add(savers)
	for i := 0; i < savers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.SaveTransaction(ctx, mk("10", models.TypeIncome, int64(1000+i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	state := svc.Current()
	require.Len(t, state.Entries, savers)
	assert.True(t, state.TotalIncome.Equal(decimal.NewFromInt(10*savers)))
	assert.True(t, state.Entries[savers-1].Balance.Equal(decimal.NewFromInt(10*savers)))
}

func TestServiceSnapshotOrderedByDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// A backdated transaction must slot in before existing ones.
	_, err := svc.SaveTransaction(ctx, mk("40", models.TypeExpense, 5000))
	require.NoError(t, err)
	_, err = svc.SaveTransaction(ctx, mk("100", models.TypeIncome, 1000))
	require.NoError(t, err)

	state := svc.Current()
	require.Len(t, state.Entries, 2)
	assert.Equal(t, models.TypeIncome, state.Entries[0].Transaction.Type)
	assert.Equal(t, "100", state.Entries[0].Balance.String())
	assert.Equal(t, "60", state.Entries[1].Balance.String())
}

func TestServiceSubscribe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ch, cancel := svc.Subscribe()
	defer cancel()

	// Initial snapshot delivered on subscription.
	initial := <-ch
	assert.Empty(t, initial.Entries)

	_, err := svc.SaveTransaction(ctx, mk("100", models.TypeIncome, 1000))
	require.NoError(t, err)

	updated := <-ch
	require.Len(t, updated.Entries, 1)
	assert.Equal(t, "100", updated.TotalIncome.String())
}

func TestServiceSubscribeCoalescesRapidWrites(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ch, cancel := svc.Subscribe()
	defer cancel()
	<-ch // drain initial snapshot

	// Several writes without draining: the consumer must end up seeing the
	// newest snapshot, not a stale intermediate one.
	for i := range 5 {
		_, err := svc.SaveTransaction(ctx, mk("10", models.TypeIncome, int64(1000+i)))
		require.NoError(t, err)
	}

	latest := <-ch
	assert.Equal(t, "50", latest.TotalIncome.String())
}

func TestServiceUnsubscribeStopsDelivery(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ch, cancel := svc.Subscribe()
	<-ch
	cancel()

	_, err := svc.SaveTransaction(ctx, mk("10", models.TypeIncome, 1000))
	require.NoError(t, err)

	select {
	case <-ch:
		t.Fatal("unexpected delivery after unsubscribe")
	default:
	}
}

func TestServiceImportReplace(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveTransaction(ctx, mk("999", models.TypeIncome, 1))
	require.NoError(t, err)

	incoming := []models.Transaction{
		{ID: 5, Amount: decimal.NewFromInt(10), Category: "FUEL", Date: 100, Type: models.TypeExpense},
		{ID: 6, Amount: decimal.NewFromInt(30), Category: "BILLS", Date: 200, Type: models.TypeIncome},
	}
	require.NoError(t, svc.ImportReplace(ctx, incoming))

	state := svc.Current()
	require.Len(t, state.Entries, 2)
	assert.Equal(t, "30", state.TotalIncome.String())
	assert.Equal(t, "10", state.TotalExpense.String())
}

func TestServiceStoredTotalsMatchSnapshot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveTransaction(ctx, mk("100.50", models.TypeIncome, 1000))
	require.NoError(t, err)
	_, err = svc.SaveTransaction(ctx, mk("40.25", models.TypeExpense, 2000))
	require.NoError(t, err)

	income, expense, err := svc.StoredTotals(ctx)
	require.NoError(t, err)

	state := svc.Current()
	assert.True(t, income.Equal(state.TotalIncome))
	assert.True(t, expense.Equal(state.TotalExpense))
}

// failingStore returns an error from every operation.
type failingStore struct{}

var errDown = errors.New("store unavailable")

func (failingStore) ListAll(context.Context) ([]models.Transaction, error) { return nil, errDown }
func (failingStore) Get(context.Context, int64) (models.Transaction, error) {
	return models.Transaction{}, errDown
}
func (failingStore) Insert(context.Context, models.Transaction) (int64, error) { return 0, errDown }
func (failingStore) Update(context.Context, models.Transaction) error          { return errDown }
func (failingStore) Delete(context.Context, int64) error                       { return errDown }
func (failingStore) DeleteAll(context.Context) error                           { return errDown }
func (failingStore) SumByType(context.Context, models.TransactionType) (decimal.Decimal, error) {
	return decimal.Zero, errDown
}
func (failingStore) ReplaceAll(context.Context, []models.Transaction) error { return errDown }
func (failingStore) Close() error                                           { return nil }

func TestServicePropagatesStoreFailures(t *testing.T) {
	_, err := NewService(context.Background(), failingStore{}, &logging.MockLogger{})
	require.Error(t, err)

	var storeErr *ledgererror.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, errDown)
}
