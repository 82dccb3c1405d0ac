package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget represents a household ledger shared by one or more users.
//
// A budget is the highest level of organization, all other
// resources reference it directly.
type Budget struct {
	DefaultModel
	Name    string
	OwnerID string            // ID of the user who created the budget
	Members map[string]string `gorm:"serializer:json"` // user ID to email for all members
}

// BeforeSave ensures consistency for the budget.
//
// The owner is always a member, so sharing a budget can never
// lock out the user who created it.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return ErrBudgetNameEmpty
	}

	if b.Members == nil {
		b.Members = make(map[string]string)
	}

	if b.OwnerID != "" {
		if _, ok := b.Members[b.OwnerID]; !ok {
			b.Members[b.OwnerID] = ""
		}
	}

	return nil
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Name") {
		toSave := tx.Statement.Dest.(Budget)
		if strings.TrimSpace(toSave.Name) == "" {
			return ErrBudgetNameEmpty
		}
	}

	return nil
}

// Balance returns the sum of the balances of all accounts of the
// budget that are included in the total.
func (b Budget) Balance(db *gorm.DB) (decimal.Decimal, error) {
	var accounts []Account
	err := db.Where(&Account{BudgetID: b.ID, IncludeInTotal: true}, "BudgetID", "IncludeInTotal").Find(&accounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, account := range accounts {
		balance = balance.Add(account.Balance)
	}

	return balance, nil
}
