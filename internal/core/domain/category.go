package domain

import "time"

// Category is a label expenses are filed under. Categories are created and
// updated in place; there is no delete operation.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}
