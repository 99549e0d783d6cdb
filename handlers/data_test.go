package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/handlers"
	"expense-tracker/models"
)

func TestGetStatisticsHandler(t *testing.T) {
	application, cleanup := setupTestApp(t)
	defer cleanup()

	fiberApp := setupFiberApp()
	fiberApp.Get("/api/statistics", handlers.GetStatistics(application))

	today := time.Now().Format("2006-01-02")
	_, err := application.Repo.AddTransaction(models.Transaction{
		Type: models.TypeIncome, Amount: 1000, Category: "Salary", Description: "Paycheck", Date: today,
	})
	require.NoError(t, err)
	_, err = application.Repo.AddTransaction(models.Transaction{
		Type: models.TypeExpense, Amount: 250, Category: "Groceries", Description: "Market", Date: today,
	})
	require.NoError(t, err)

	tests := []struct {
		name           string
		query          string
		expectedPeriod string
	}{
		{
			name:           "Default period is month",
			query:          "",
			expectedPeriod: "month",
		},
		{
			name:           "Week",
			query:          "?period=week",
			expectedPeriod: "week",
		},
		{
			name:           "Year",
			query:          "?period=year",
			expectedPeriod: "year",
		},
		{
			name:           "Unknown period falls back to month",
			query:          "?period=quarter",
			expectedPeriod: "month",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/statistics"+tt.query, nil)
			resp, err := fiberApp.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body struct {
				Statistics models.Statistics `json:"statistics"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, tt.expectedPeriod, body.Statistics.Period)
			assert.Equal(t, 2, body.Statistics.TransactionCount)
			assert.Equal(t, 1000.0, body.Statistics.Income)
			assert.Equal(t, 250.0, body.Statistics.Expenses)
			assert.Equal(t, 750.0, body.Statistics.Balance)
		})
	}
}
