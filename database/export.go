package database

import (
	"expense-tracker/models"
)

// ExportData dumps a full snapshot of all four primary collections.
func (r *Repository) ExportData() (models.ExportPayload, error) {
	payload := models.ExportPayload{
		ExportDate: r.now(),
		Version:    SchemaVersion,
	}

	if err := r.store.GetAll(CollectionTransactions, &payload.Transactions); err != nil {
		return models.ExportPayload{}, err
	}
	if err := r.store.GetAll(CollectionCategories, &payload.Categories); err != nil {
		return models.ExportPayload{}, err
	}
	if err := r.store.GetAll(CollectionBudgets, &payload.Budgets); err != nil {
		return models.ExportPayload{}, err
	}
	if err := r.store.GetAll(CollectionSettings, &payload.Settings); err != nil {
		return models.ExportPayload{}, err
	}

	if payload.Transactions == nil {
		payload.Transactions = []models.Transaction{}
	}
	if payload.Categories == nil {
		payload.Categories = []models.Category{}
	}
	if payload.Budgets == nil {
		payload.Budgets = []models.Budget{}
	}
	if payload.Settings == nil {
		payload.Settings = []models.Setting{}
	}

	return payload, nil
}

// ImportData restores a snapshot. Every collection is cleared before the
// provided records are inserted, so a payload missing a key leaves that
// collection empty. Destructive and irreversible once committed.
func (r *Repository) ImportData(payload models.ExportPayload) error {
	for _, collection := range []string{
		CollectionTransactions,
		CollectionCategories,
		CollectionBudgets,
		CollectionSettings,
	} {
		if err := r.store.Clear(collection); err != nil {
			return err
		}
	}

	for _, tx := range payload.Transactions {
		if err := r.store.Add(CollectionTransactions, tx.ID, tx); err != nil {
			return err
		}
	}
	for _, cat := range payload.Categories {
		if err := r.store.Add(CollectionCategories, cat.ID, cat); err != nil {
			return err
		}
	}
	for _, budget := range payload.Budgets {
		if err := r.store.Add(CollectionBudgets, budget.Category, budget); err != nil {
			return err
		}
	}
	for _, setting := range payload.Settings {
		if err := r.store.Add(CollectionSettings, setting.Key, setting); err != nil {
			return err
		}
	}

	r.writeMirror()
	return nil
}
