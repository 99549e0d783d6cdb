package models

import (
	"encoding/json"
	"time"
)

// MaxSyncRetries is the ceiling on replay attempts for a queued mutation.
// Items that fail this many times are dropped.
const MaxSyncRetries = 3

// Sync queue operations
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Sync queue entity types
const (
	EntityTransaction = "transaction"
	EntityCategory    = "category"
	EntityBudget      = "budget"
)

// SyncQueueItem is one mutation captured while offline, waiting for replay.
type SyncQueueItem struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entityType"`
	Operation  string          `json:"operation"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  time.Time       `json:"timestamp"`
	Retries    int             `json:"retries"`
}

type Setting struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// BackupSnapshot is the flat key-value mirror written after every successful
// mutation. The JSON keys are fixed and part of the on-disk format.
type BackupSnapshot struct {
	Transactions []Transaction `json:"expenseTrackerTransactions"`
	Categories   []Category    `json:"expenseTrackerCategories"`
	Budgets      []Budget      `json:"expenseTrackerBudgets"`
}

// ExportPayload is the import/export file format.
type ExportPayload struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
	Budgets      []Budget      `json:"budgets"`
	Settings     []Setting     `json:"settings"`
	ExportDate   time.Time     `json:"exportDate"`
	Version      int           `json:"version"`
}
