package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Budget errors
var ErrBudgetNameEmpty = errors.New("the budget name must be set")

// Account errors
var ErrAccountNameNotUnique = errors.New("the account name must be unique for the budget")

// Category errors
var (
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the parent category")
	ErrCategoryTypeInvalid   = errors.New("the category type must be EXPENSE or INCOME")
	ErrCategoryTooDeep       = errors.New("categories can be nested at most three levels deep")
	ErrCategoryTypeMismatch  = errors.New("the category type must match the type of its parent category")
	ErrCategoryOwnParent     = errors.New("a category cannot be its own parent")
	ErrCategoryLimitNegative = errors.New("the category limit must not be negative")
)

// Transaction errors
var (
	ErrTransactionTypeInvalid        = errors.New("the transaction type must be EXPENSE, INCOME or TRANSFER")
	ErrSourceDoesNotEqualDestination = errors.New("the source and destination account of a transfer must be different")
)

// Recurring transaction errors
var (
	ErrPeriodicityInvalid = errors.New("the periodicity must be MONTHLY or WEEKLY")
	ErrDayOfMonthInvalid  = errors.New("the day of month must be between 1 and 31")
	ErrDayOfWeekInvalid   = errors.New("the day of week must be between 1 and 7")
)
