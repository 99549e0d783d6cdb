package database

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"expense-tracker/models"
)

// SyncQueue captures mutations made while offline for later replay.
type SyncQueue interface {
	Enqueue(entityType, operation string, payload any) error
}

// Connectivity reports whether the remote sync endpoint is reachable.
type Connectivity interface {
	IsOnline() bool
}

// Mirror is the flat-file backup copy of the primary collections, written
// after every successful mutation and read only when the store is down.
type Mirror interface {
	Write(snap models.BackupSnapshot) error
	Read() (models.BackupSnapshot, error)
}

// Default categories pre-seeded into every install. User-added categories
// merge over these by (type, name), persisted records taking precedence.
var defaultCategories = map[string][]string{
	models.TypeExpense: {
		"Food & Dining", "Transportation", "Shopping", "Entertainment",
		"Bills & Utilities", "Healthcare", "Education", "Travel",
		"Groceries", "Other",
	},
	models.TypeIncome: {
		"Salary", "Freelancing", "Business", "Investments", "Gifts", "Other",
	},
}

// Repository implements the business-level operations over the four primary
// collections. Queue, connectivity and mirror are optional; a nil value
// disables the corresponding behavior (used by tests).
type Repository struct {
	store  *Store
	queue  SyncQueue
	net    Connectivity
	mirror Mirror

	now func() time.Time
}

func NewRepository(store *Store, queue SyncQueue, net Connectivity, mirror Mirror) *Repository {
	return &Repository{
		store:  store,
		queue:  queue,
		net:    net,
		mirror: mirror,
		now:    time.Now,
	}
}

// ==================== TRANSACTIONS ====================

// AddTransaction persists a transaction, assigning a time-based id and a
// creation timestamp when absent. Offline mutations are also queued for
// replay. Returns the record as persisted.
func (r *Repository) AddTransaction(tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = r.newID()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = r.now()
	}

	if err := r.store.Put(CollectionTransactions, tx.ID, tx); err != nil {
		return models.Transaction{}, err
	}

	r.enqueueIfOffline(models.EntityTransaction, models.OpAdd, tx)
	r.writeMirror()
	return tx, nil
}

// GetTransactions loads the full snapshot, applies in-memory filters and
// sorts descending by date. This is a degraded-but-available read path: on
// store failure it falls back to the backup mirror, then to an empty list,
// so dashboards keep rendering.
func (r *Repository) GetTransactions(filter models.TransactionFilter) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.store.GetAll(CollectionTransactions, &txs); err != nil {
		slog.Error("failed to load transactions, serving fallback", "error", err)
		txs = r.fallbackSnapshot().Transactions
	}

	filtered := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		if filter.DateFrom != "" && tx.Date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && tx.Date > filter.DateTo {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(tx.Description), needle) &&
				!strings.Contains(strings.ToLower(tx.Category), needle) {
				continue
			}
		}
		filtered = append(filtered, tx)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date > filtered[j].Date
	})

	return filtered, nil
}

// UpdateTransaction merges the patch over the stored record and persists
// the result. Returns ErrNotFound when no record exists under id.
func (r *Repository) UpdateTransaction(id string, patch models.TransactionPatch) (models.Transaction, error) {
	var tx models.Transaction
	if err := r.store.Get(CollectionTransactions, id, &tx); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, err
	}

	if patch.Type != nil {
		tx.Type = *patch.Type
	}
	if patch.Amount != nil {
		tx.Amount = *patch.Amount
	}
	if patch.Category != nil {
		tx.Category = *patch.Category
	}
	if patch.Description != nil {
		tx.Description = *patch.Description
	}
	if patch.Date != nil {
		tx.Date = *patch.Date
	}

	if err := r.store.Put(CollectionTransactions, tx.ID, tx); err != nil {
		return models.Transaction{}, err
	}

	r.enqueueIfOffline(models.EntityTransaction, models.OpUpdate, tx)
	r.writeMirror()
	return tx, nil
}

// DeleteTransaction removes a transaction by id. Deleting an unknown id is
// a no-op, not an error.
func (r *Repository) DeleteTransaction(id string) error {
	if err := r.store.Delete(CollectionTransactions, id); err != nil {
		return err
	}

	r.enqueueIfOffline(models.EntityTransaction, models.OpDelete, map[string]string{"id": id})
	r.writeMirror()
	return nil
}

// ==================== CATEGORIES ====================

// GetCategories returns the union of the default categories and the
// persisted user categories, keyed by (type, name) with persisted records
// taking precedence. When catType is non-empty only that type is returned.
func (r *Repository) GetCategories(catType string) ([]models.Category, error) {
	var persisted []models.Category
	if err := r.store.GetAll(CollectionCategories, &persisted); err != nil {
		slog.Error("failed to load categories, serving fallback", "error", err)
		persisted = r.fallbackSnapshot().Categories
	}

	merged := make([]models.Category, 0, len(persisted))
	index := make(map[string]int)

	for _, t := range []string{models.TypeExpense, models.TypeIncome} {
		for _, name := range defaultCategories[t] {
			index[t+"/"+name] = len(merged)
			merged = append(merged, models.Category{
				ID:   "default:" + t + ":" + name,
				Name: name,
				Type: t,
			})
		}
	}

	for _, cat := range persisted {
		if i, ok := index[cat.Type+"/"+cat.Name]; ok {
			merged[i] = cat
			continue
		}
		index[cat.Type+"/"+cat.Name] = len(merged)
		merged = append(merged, cat)
	}

	if catType == "" {
		return merged, nil
	}

	filtered := make([]models.Category, 0, len(merged))
	for _, cat := range merged {
		if cat.Type == catType {
			filtered = append(filtered, cat)
		}
	}
	return filtered, nil
}

// AddCategory persists a user category. Name uniqueness within a type is
// the caller's responsibility; the repository does not reject duplicates.
func (r *Repository) AddCategory(cat models.Category) (models.Category, error) {
	if cat.ID == "" {
		cat.ID = r.newID()
	}
	if cat.Timestamp.IsZero() {
		cat.Timestamp = r.now()
	}

	if err := r.store.Put(CollectionCategories, cat.ID, cat); err != nil {
		return models.Category{}, err
	}

	r.enqueueIfOffline(models.EntityCategory, models.OpAdd, cat)
	r.writeMirror()
	return cat, nil
}

func (r *Repository) DeleteCategory(id string) error {
	if err := r.store.Delete(CollectionCategories, id); err != nil {
		return err
	}

	r.enqueueIfOffline(models.EntityCategory, models.OpDelete, map[string]string{"id": id})
	r.writeMirror()
	return nil
}

// ==================== BUDGETS ====================

func (r *Repository) GetBudgets() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.store.GetAll(CollectionBudgets, &budgets); err != nil {
		slog.Error("failed to load budgets, serving fallback", "error", err)
		budgets = r.fallbackSnapshot().Budgets
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// SetBudget upserts the budget for a category. The category is the natural
// key, so setting the same category twice leaves a single record.
func (r *Repository) SetBudget(category string, amount float64) (models.Budget, error) {
	budget := models.Budget{
		Category:  category,
		Amount:    amount,
		Timestamp: r.now(),
	}

	if err := r.store.Put(CollectionBudgets, category, budget); err != nil {
		return models.Budget{}, err
	}

	r.enqueueIfOffline(models.EntityBudget, models.OpUpdate, budget)
	r.writeMirror()
	return budget, nil
}

func (r *Repository) DeleteBudget(category string) error {
	if err := r.store.Delete(CollectionBudgets, category); err != nil {
		return err
	}

	r.enqueueIfOffline(models.EntityBudget, models.OpDelete, map[string]string{"category": category})
	r.writeMirror()
	return nil
}

// ==================== SETTINGS ====================

// GetSetting returns the stored value for key, or nil when unset.
func (r *Repository) GetSetting(key string) (json.RawMessage, error) {
	var setting models.Setting
	err := r.store.Get(CollectionSettings, key, &setting)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return setting.Value, nil
}

func (r *Repository) SetSetting(key string, value json.RawMessage) error {
	return r.store.Put(CollectionSettings, key, models.Setting{Key: key, Value: value})
}

// ==================== HELPERS ====================

// newID builds a monotonic-enough unique id from the current time.
func (r *Repository) newID() string {
	return strconv.FormatInt(r.now().UnixNano(), 10)
}

// enqueueIfOffline records the mutation for replay when the remote endpoint
// is unreachable. Queue failures are logged, never surfaced: the local
// write already succeeded.
func (r *Repository) enqueueIfOffline(entityType, operation string, payload any) {
	if r.queue == nil || r.net == nil || r.net.IsOnline() {
		return
	}
	if err := r.queue.Enqueue(entityType, operation, payload); err != nil {
		slog.Error("failed to queue offline mutation",
			"entity", entityType,
			"operation", operation,
			"error", err,
		)
	}
}

// writeMirror refreshes the backup copy after a successful mutation.
// Mirror failures are logged and do not fail the mutation.
func (r *Repository) writeMirror() {
	if r.mirror == nil {
		return
	}

	var snap models.BackupSnapshot
	if err := r.store.GetAll(CollectionTransactions, &snap.Transactions); err != nil {
		slog.Error("failed to snapshot transactions for backup", "error", err)
		return
	}
	if err := r.store.GetAll(CollectionCategories, &snap.Categories); err != nil {
		slog.Error("failed to snapshot categories for backup", "error", err)
		return
	}
	if err := r.store.GetAll(CollectionBudgets, &snap.Budgets); err != nil {
		slog.Error("failed to snapshot budgets for backup", "error", err)
		return
	}

	if err := r.mirror.Write(snap); err != nil {
		slog.Error("failed to write backup mirror", "error", err)
	}
}

// fallbackSnapshot reads the backup mirror, returning an empty snapshot
// when no mirror is configured or readable.
func (r *Repository) fallbackSnapshot() models.BackupSnapshot {
	if r.mirror == nil {
		return models.BackupSnapshot{}
	}
	snap, err := r.mirror.Read()
	if err != nil {
		return models.BackupSnapshot{}
	}
	return snap
}
