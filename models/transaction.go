package models

import "time"

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

// TransactionFilter narrows down GetTransactions results.
// Date bounds are inclusive and compared as YYYY-MM-DD strings.
type TransactionFilter struct {
	Type     string
	Category string
	DateFrom string
	DateTo   string
	Search   string
}

// TransactionPatch is a partial update; nil fields are left unchanged.
type TransactionPatch struct {
	Type        *string  `json:"type,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Budget is keyed by category, at most one per category.
type Budget struct {
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type Statistics struct {
	Income            float64            `json:"income"`
	Expenses          float64            `json:"expenses"`
	Balance           float64            `json:"balance"`
	TransactionCount  int                `json:"transactionCount"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	Period            string             `json:"period"`
}

type CreateTransactionRequest struct {
	Type        string `json:"type" validate:"required,txntype"`
	Amount      string `json:"amount" validate:"required,amount"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required,dateformat"`
}

type UpdateTransactionRequest struct {
	Type        *string `json:"type" validate:"omitempty,txntype"`
	Amount      *string `json:"amount" validate:"omitempty,amount"`
	Category    *string `json:"category"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Date        *string `json:"date" validate:"omitempty,dateformat"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
	Type string `json:"type" validate:"required,txntype"`
}

type SetBudgetRequest struct {
	Category string `json:"category" validate:"required"`
	Amount   string `json:"amount" validate:"required,amount"`
}
