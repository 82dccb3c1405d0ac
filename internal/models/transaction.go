package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the type of a transaction.
//
// The amount of a transaction is always positive, the effect on the
// account balances is derived from the type, never stored.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction represents a booked operation on one or two accounts.
//
// For EXPENSE and INCOME, AccountID is the affected account and CategoryID
// the leaf category. For TRANSFER, AccountID is the source, ToAccountID the
// destination and CategoryID is not set.
type Transaction struct {
	DefaultModel
	Budget      Budget    `json:"-"`
	BudgetID    uuid.UUID
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date        time.Time       // Time of day is currently only used for sorting
	Type        TransactionType
	AccountID   uuid.UUID `gorm:"check:transfer_accounts_different,to_account_id IS NULL OR account_id != to_account_id"`
	Account     Account   `json:"-"`
	CategoryID  *uuid.UUID
	Category    *Category  `json:"-"`
	ToAccountID *uuid.UUID // destination account, only set for transfers
	ToAccount   *Account   `json:"-"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - normalizes empty references to nil
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	// Ensure that references are nil and not pointers to nil UUIDs
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.ToAccountID != nil && *t.ToAccountID == uuid.Nil {
		t.ToAccountID = nil
	}

	return
}
