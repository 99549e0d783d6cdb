package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Generic record operations over any collection. Every operation opens the
// store on first use, marshals records to JSON documents and reports
// failures as *RecordOperationError. Storage errors are never swallowed
// here; translating them into degraded results is the repository's call.

// Add inserts a record under key and fails if the key already exists.
func (s *Store) Add(collection, key string, record any) error {
	db, err := s.collectionHandle(collection, "add")
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return &RecordOperationError{Collection: collection, Op: "add", Err: err}
	}

	if _, err := db.Exec("INSERT INTO "+collection+" (key, data) VALUES (?, ?)", key, string(data)); err != nil {
		return &RecordOperationError{Collection: collection, Op: "add", Err: err}
	}
	return nil
}

// Put inserts or replaces the record under key.
func (s *Store) Put(collection, key string, record any) error {
	db, err := s.collectionHandle(collection, "put")
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return &RecordOperationError{Collection: collection, Op: "put", Err: err}
	}

	_, err = db.Exec(`
		INSERT INTO `+collection+` (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data
	`, key, string(data))
	if err != nil {
		return &RecordOperationError{Collection: collection, Op: "put", Err: err}
	}
	return nil
}

// Get unmarshals the record under key into dest. Returns ErrNotFound when
// the key is absent.
func (s *Store) Get(collection, key string, dest any) error {
	db, err := s.collectionHandle(collection, "get")
	if err != nil {
		return err
	}

	var data string
	err = db.QueryRow("SELECT data FROM "+collection+" WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return &RecordOperationError{Collection: collection, Op: "get", Err: err}
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return &RecordOperationError{Collection: collection, Op: "get", Err: err}
	}
	return nil
}

// GetAll unmarshals every record in the collection into dest, which must be
// a pointer to a slice. Records come back in key order, which for the sync
// queue is insertion order.
func (s *Store) GetAll(collection string, dest any) error {
	db, err := s.collectionHandle(collection, "getAll")
	if err != nil {
		return err
	}

	rows, err := db.Query("SELECT data FROM " + collection + " ORDER BY key")
	if err != nil {
		return &RecordOperationError{Collection: collection, Op: "getAll", Err: err}
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return &RecordOperationError{Collection: collection, Op: "getAll", Err: err}
		}
		records = append(records, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return &RecordOperationError{Collection: collection, Op: "getAll", Err: err}
	}

	// Re-marshal the raw documents as one array and decode into the
	// caller's slice type.
	combined, err := json.Marshal(records)
	if err != nil {
		return &RecordOperationError{Collection: collection, Op: "getAll", Err: err}
	}
	if err := json.Unmarshal(combined, dest); err != nil {
		return &RecordOperationError{Collection: collection, Op: "getAll", Err: err}
	}
	return nil
}

// Delete removes the record under key. Deleting an absent key is not an
// error.
func (s *Store) Delete(collection, key string) error {
	db, err := s.collectionHandle(collection, "delete")
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM "+collection+" WHERE key = ?", key); err != nil {
		return &RecordOperationError{Collection: collection, Op: "delete", Err: err}
	}
	return nil
}

// Clear wipes the collection.
func (s *Store) Clear(collection string) error {
	db, err := s.collectionHandle(collection, "clear")
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM " + collection); err != nil {
		return &RecordOperationError{Collection: collection, Op: "clear", Err: err}
	}
	return nil
}

// Count returns the number of records in the collection.
func (s *Store) Count(collection string) (int, error) {
	db, err := s.collectionHandle(collection, "count")
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + collection).Scan(&n); err != nil {
		return 0, &RecordOperationError{Collection: collection, Op: "count", Err: err}
	}
	return n, nil
}

// collectionHandle validates the collection name and lazily opens the store.
// Collection names interpolate into SQL, so only the known set is accepted.
func (s *Store) collectionHandle(collection, op string) (*sql.DB, error) {
	if !collections[collection] {
		return nil, &RecordOperationError{
			Collection: collection,
			Op:         op,
			Err:        fmt.Errorf("unknown collection %q", collection),
		}
	}
	return s.Open()
}
