package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"expense-tracker/database"
	"expense-tracker/models"
)

// SyncFunc replays a single queued mutation against the remote endpoint.
type SyncFunc func(ctx context.Context, item models.SyncQueueItem) error

// Queue is the durable log of mutations attempted while disconnected.
// Items are persisted in the sync_queue collection with keys that sort in
// insertion order, drained oldest-first on reconnect.
type Queue struct {
	store  *database.Store
	syncFn SyncFunc

	mu       sync.Mutex
	draining bool

	seq atomic.Uint64
}

func NewQueue(store *database.Store, syncFn SyncFunc) *Queue {
	return &Queue{store: store, syncFn: syncFn}
}

// Enqueue appends a mutation with a fresh retry counter.
func (q *Queue) Enqueue(entityType, operation string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode sync payload: %w", err)
	}

	now := time.Now()
	item := models.SyncQueueItem{
		// Zero-padded so lexicographic key order is insertion order; the
		// sequence suffix separates items created in the same nanosecond.
		ID:         fmt.Sprintf("%020d-%06d", now.UnixNano(), q.seq.Add(1)),
		EntityType: entityType,
		Operation:  operation,
		Payload:    data,
		Timestamp:  now,
		Retries:    0,
	}

	return q.store.Add(database.CollectionSyncQueue, item.ID, item)
}

// Pending returns the number of queued items.
func (q *Queue) Pending() (int, error) {
	return q.store.Count(database.CollectionSyncQueue)
}

// Drain replays queued items oldest-first. Successful items are removed;
// failed items have their retry count bumped and are re-persisted until
// the ceiling of MaxSyncRetries, after which they are dropped. Drains are
// serialized by an in-flight flag: a second drain triggered while one is
// running returns immediately, so no item is ever processed twice.
func (q *Queue) Drain(ctx context.Context) {
	q.mu.Lock()
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.draining = false
		q.mu.Unlock()
	}()

	var items []models.SyncQueueItem
	if err := q.store.GetAll(database.CollectionSyncQueue, &items); err != nil {
		log.Printf("[Sync Queue] Failed to load queued items: %v", err)
		return
	}
	if len(items) == 0 {
		return
	}

	log.Printf("[Sync Queue] Draining %d queued items", len(items))

	var synced, failed, dropped int
	for _, item := range items {
		if err := q.syncFn(ctx, item); err != nil {
			item.Retries++
			if item.Retries >= models.MaxSyncRetries {
				if derr := q.store.Delete(database.CollectionSyncQueue, item.ID); derr != nil {
					log.Printf("[Sync Queue] Failed to drop item %s: %v", item.ID, derr)
				}
				dropped++
				log.Printf("[Sync Queue] Dropped %s %s after %d attempts: %v",
					item.EntityType, item.Operation, item.Retries, err)
				continue
			}

			if perr := q.store.Put(database.CollectionSyncQueue, item.ID, item); perr != nil {
				log.Printf("[Sync Queue] Failed to update retries for item %s: %v", item.ID, perr)
			}
			failed++
			continue
		}

		if err := q.store.Delete(database.CollectionSyncQueue, item.ID); err != nil {
			log.Printf("[Sync Queue] Failed to remove synced item %s: %v", item.ID, err)
			continue
		}
		synced++
	}

	log.Printf("[Sync Queue] Drain complete: %d synced, %d pending retry, %d dropped",
		synced, failed, dropped)
}
