package database

import (
	"time"

	"expense-tracker/models"
)

// Statistics periods
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// GetStatistics aggregates income/expense totals and an expense category
// breakdown over a trailing window: week is the trailing 7 days, month is
// calendar-month-to-date, year is calendar-year-to-date. Unknown periods
// fall back to month.
func (r *Repository) GetStatistics(period string) (models.Statistics, error) {
	txs, err := r.GetTransactions(models.TransactionFilter{})
	if err != nil {
		return models.Statistics{}, err
	}

	now := r.now()
	var start time.Time
	switch period {
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		period = PeriodMonth
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	stats := models.Statistics{
		CategoryBreakdown: make(map[string]float64),
		Period:            period,
	}

	for _, tx := range txs {
		date, err := time.ParseInLocation("2006-01-02", tx.Date, now.Location())
		if err != nil {
			continue
		}
		if date.Before(start) {
			continue
		}

		stats.TransactionCount++
		switch tx.Type {
		case models.TypeIncome:
			stats.Income += tx.Amount
		case models.TypeExpense:
			stats.Expenses += tx.Amount
			stats.CategoryBreakdown[tx.Category] += tx.Amount
		}
	}

	stats.Balance = stats.Income - stats.Expenses
	return stats, nil
}
