package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an account of a budget, e.g. a bank account or a wallet.
//
// The balance is the authoritative running total for the account. It is only
// ever mutated together with the transaction that causes the change, inside
// one database transaction. See the ledger package.
type Account struct {
	DefaultModel
	Budget          Budget          `json:"-"`
	BudgetID        uuid.UUID       `gorm:"uniqueIndex:account_name_budget_id"`
	Name            string          `gorm:"uniqueIndex:account_name_budget_id"`
	Balance         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	IconName        string
	IconColor       string
	BackgroundColor string
	IncludeInTotal  bool // include the account in the budget total
}

// BeforeSave trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.IconName = strings.TrimSpace(a.IconName)

	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	return a.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the account before
// committing an update to the database.
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("BudgetID") {
		toSave := tx.Statement.Dest.(Account)
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources.
func (a *Account) checkIntegrity(tx *gorm.DB, toSave Account) error {
	return tx.First(&Budget{}, toSave.BudgetID).Error
}

// Transactions returns all transactions for this account,
// regardless of whether it is the source or the destination.
func (a Account) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where(db.Where(&Transaction{AccountID: a.ID}, "AccountID").
			Or("to_account_id = ?", a.ID)).
		Find(&transactions).Error

	return transactions, err
}
