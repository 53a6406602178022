package domain

import (
	"math"
	"time"
)

// Expense references a Category and a User by identifier. The store does not
// enforce those references; the ledger validates them before insert.
type Expense struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

// NormalizeAmount rounds an amount to two decimal places. Applied once at
// write time so stored amounts and grouped sums stay on the same scale.
func NormalizeAmount(v float64) float64 {
	return math.Round(v*100) / 100
}
