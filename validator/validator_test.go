package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/models"
)

func TestValidateCreateTransaction(t *testing.T) {
	v := New()

	valid := models.CreateTransactionRequest{
		Type:        models.TypeExpense,
		Amount:      "25.50",
		Category:    "Groceries",
		Description: "Weekly shop",
		Date:        "2024-03-10",
	}

	t.Run("Valid request passes", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid))
	})

	t.Run("Unknown type rejected", func(t *testing.T) {
		req := valid
		req.Type = "transfer"

		err := v.Validate(req)
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 1)
		assert.Equal(t, "type", verrs[0].Field)
		assert.Equal(t, "txntype", verrs[0].Tag)
	})

	t.Run("Negative amount rejected", func(t *testing.T) {
		req := valid
		req.Amount = "-10"

		err := v.Validate(req)
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "amount", verrs[0].Tag)
	})

	t.Run("Non-numeric amount rejected", func(t *testing.T) {
		req := valid
		req.Amount = "lots"
		assert.Error(t, v.Validate(req))
	})

	t.Run("Bad date format rejected", func(t *testing.T) {
		req := valid
		req.Date = "10/03/2024"

		err := v.Validate(req)
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "dateformat", verrs[0].Tag)
		assert.Contains(t, verrs[0].Message, "YYYY-MM-DD")
	})

	t.Run("Missing required fields reported per field", func(t *testing.T) {
		err := v.Validate(models.CreateTransactionRequest{})
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.GreaterOrEqual(t, len(verrs), 3)

		fields := make(map[string]bool)
		for _, e := range verrs {
			fields[e.Field] = true
		}
		assert.True(t, fields["type"])
		assert.True(t, fields["amount"])
		assert.True(t, fields["date"])
	})
}

func TestValidateCategoryAndBudget(t *testing.T) {
	v := New()

	t.Run("Valid category", func(t *testing.T) {
		assert.NoError(t, v.Validate(models.CreateCategoryRequest{
			Name: "Subscriptions",
			Type: models.TypeExpense,
		}))
	})

	t.Run("Category with bad type", func(t *testing.T) {
		assert.Error(t, v.Validate(models.CreateCategoryRequest{
			Name: "Subscriptions",
			Type: "both",
		}))
	})

	t.Run("Valid budget", func(t *testing.T) {
		assert.NoError(t, v.Validate(models.SetBudgetRequest{
			Category: "Groceries",
			Amount:   "300",
		}))
	})

	t.Run("Budget with negative amount", func(t *testing.T) {
		assert.Error(t, v.Validate(models.SetBudgetRequest{
			Category: "Groceries",
			Amount:   "-300",
		}))
	})
}
