package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and password mismatch so
	// a caller cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrExpenseNotFound  = errors.New("expense not found")

	// ErrNotSaved masks store-level write failures. The underlying cause is
	// logged server-side only.
	ErrNotSaved = errors.New("register could not be saved")
)
