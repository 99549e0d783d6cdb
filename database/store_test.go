package database

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/models"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "store-test-*")
	require.NoError(t, err)

	store := NewStore(filepath.Join(tmpDir, "test.db"))

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func TestStoreOpen(t *testing.T) {
	t.Run("Open is idempotent", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		db1, err := store.Open()
		require.NoError(t, err)

		db2, err := store.Open()
		require.NoError(t, err)

		assert.Same(t, db1, db2)
	})

	t.Run("Concurrent opens share one handle", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		const callers = 10
		handles := make([]any, callers)

		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				db, err := store.Open()
				assert.NoError(t, err)
				handles[i] = db
			}(i)
		}
		wg.Wait()

		for i := 1; i < callers; i++ {
			assert.Same(t, handles[0], handles[i])
		}
	})

	t.Run("Unwritable path fails with StoreOpenError", func(t *testing.T) {
		store := NewStore("/proc/no-such-dir/test.db")

		_, err := store.Open()
		require.Error(t, err)

		var openErr *StoreOpenError
		assert.ErrorAs(t, err, &openErr)
	})

	t.Run("Record operations open the store lazily", func(t *testing.T) {
		store, cleanup := setupTestStore(t)
		defer cleanup()

		// No explicit Open before the first operation
		err := store.Put(CollectionSettings, "currency", models.Setting{Key: "currency"})
		require.NoError(t, err)

		var setting models.Setting
		require.NoError(t, store.Get(CollectionSettings, "currency", &setting))
		assert.Equal(t, "currency", setting.Key)
	})
}

func TestRecordOperations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	t.Run("Add rejects an existing key", func(t *testing.T) {
		tx := models.Transaction{ID: "1", Type: models.TypeExpense, Amount: 10}

		require.NoError(t, store.Add(CollectionTransactions, tx.ID, tx))

		err := store.Add(CollectionTransactions, tx.ID, tx)
		require.Error(t, err)

		var opErr *RecordOperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, CollectionTransactions, opErr.Collection)
		assert.Equal(t, "add", opErr.Op)
	})

	t.Run("Put replaces an existing record", func(t *testing.T) {
		require.NoError(t, store.Put(CollectionBudgets, "Food", models.Budget{Category: "Food", Amount: 100}))
		require.NoError(t, store.Put(CollectionBudgets, "Food", models.Budget{Category: "Food", Amount: 250}))

		var budget models.Budget
		require.NoError(t, store.Get(CollectionBudgets, "Food", &budget))
		assert.Equal(t, 250.0, budget.Amount)
	})

	t.Run("Get on a missing key returns ErrNotFound", func(t *testing.T) {
		var tx models.Transaction
		err := store.Get(CollectionTransactions, "missing", &tx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetAll returns records in key order", func(t *testing.T) {
		require.NoError(t, store.Clear(CollectionCategories))

		for _, key := range []string{"b", "c", "a"} {
			require.NoError(t, store.Put(CollectionCategories, key, models.Category{ID: key, Name: key}))
		}

		var cats []models.Category
		require.NoError(t, store.GetAll(CollectionCategories, &cats))

		require.Len(t, cats, 3)
		assert.Equal(t, "a", cats[0].ID)
		assert.Equal(t, "b", cats[1].ID)
		assert.Equal(t, "c", cats[2].ID)
	})

	t.Run("Delete on a missing key is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Delete(CollectionTransactions, "missing"))
	})

	t.Run("Clear wipes the collection", func(t *testing.T) {
		require.NoError(t, store.Put(CollectionSettings, "theme", models.Setting{Key: "theme"}))
		require.NoError(t, store.Clear(CollectionSettings))

		n, err := store.Count(CollectionSettings)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("Unknown collection is rejected", func(t *testing.T) {
		err := store.Clear("users; DROP TABLE transactions")
		require.Error(t, err)

		var opErr *RecordOperationError
		assert.ErrorAs(t, err, &opErr)
	})
}
