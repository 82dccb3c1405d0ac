package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Periodicity is the interval at which a recurring transaction executes.
type Periodicity string

const (
	PeriodicityMonthly Periodicity = "MONTHLY"
	PeriodicityWeekly  Periodicity = "WEEKLY"
)

// RecurringTransaction is a template for a transaction that is materialized
// periodically by the ledger scheduler.
//
// NextExecution is advanced by exactly one period per execution and is only
// ever mutated by the scheduler.
type RecurringTransaction struct {
	DefaultModel
	Budget        Budget    `json:"-"`
	BudgetID      uuid.UUID
	Description   string
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type          TransactionType // EXPENSE or INCOME, transfers cannot recur
	AccountID     uuid.UUID
	Account       Account `json:"-"`
	CategoryID    uuid.UUID
	Category      Category `json:"-"`
	Periodicity   Periodicity
	DayOfMonth    int // 1-31, used for MONTHLY templates
	DayOfWeek     int // 1-7 with 1 = Sunday, used for WEEKLY templates
	NextExecution time.Time
	Active        bool
}

// BeforeSave validates the schedule fields.
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	if !slices.Contains([]TransactionType{TransactionTypeExpense, TransactionTypeIncome}, r.Type) {
		return ErrTransactionTypeInvalid
	}

	if !slices.Contains([]Periodicity{PeriodicityMonthly, PeriodicityWeekly}, r.Periodicity) {
		return ErrPeriodicityInvalid
	}

	if r.Periodicity == PeriodicityMonthly && (r.DayOfMonth < 1 || r.DayOfMonth > 31) {
		return ErrDayOfMonthInvalid
	}

	if r.Periodicity == PeriodicityWeekly && (r.DayOfWeek < 1 || r.DayOfWeek > 7) {
		return ErrDayOfWeekInvalid
	}

	r.NextExecution = r.NextExecution.In(time.UTC)

	return nil
}

func (r *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*RecurringTransaction)
	return r.checkIntegrity(tx, *toSave)
}

func (r *RecurringTransaction) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("BudgetID") || tx.Statement.Changed("AccountID") || tx.Statement.Changed("CategoryID") {
		// Fields not part of the update come from the stored template
		toSave := tx.Statement.Dest.(RecurringTransaction)
		if !tx.Statement.Changed("BudgetID") {
			toSave.BudgetID = r.BudgetID
		}
		if !tx.Statement.Changed("AccountID") {
			toSave.AccountID = r.AccountID
		}
		if !tx.Statement.Changed("CategoryID") {
			toSave.CategoryID = r.CategoryID
		}

		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources.
func (r *RecurringTransaction) checkIntegrity(tx *gorm.DB, toSave RecurringTransaction) error {
	err := tx.First(&Budget{}, toSave.BudgetID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Account{}, toSave.AccountID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}
