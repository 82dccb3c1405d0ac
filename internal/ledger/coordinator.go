package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Create books a new transaction and applies its balance effect in one
// atomic unit. On any error, nothing is persisted.
func Create(db *gorm.DB, transaction models.Transaction) (models.Transaction, error) {
	err := validate(db, &transaction)
	if err != nil {
		return models.Transaction{}, err
	}

	deltas, err := effect(transaction)
	if err != nil {
		return models.Transaction{}, err
	}

	err = inTransaction(db, func(tx *gorm.DB) error {
		err := apply(tx, transaction.BudgetID, deltas)
		if err != nil {
			return err
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// Update replaces a booked transaction with new values.
//
// The original balance effect is reversed and the new effect applied in the
// same atomic unit. Both effects are summed into one net delta per physical
// account first, so an account that appears in both the original and the
// new transaction is adjusted exactly once.
func Update(db *gorm.DB, id uuid.UUID, updated models.Transaction) (models.Transaction, error) {
	var original models.Transaction
	err := db.First(&original, id).Error
	if err != nil {
		return models.Transaction{}, err
	}

	// The tenant of a transaction is fixed
	updated.BudgetID = original.BudgetID

	err = validate(db, &updated)
	if err != nil {
		return models.Transaction{}, err
	}

	err = inTransaction(db, func(tx *gorm.DB) error {
		// Re-read the original inside the atomic unit so the reversal is
		// computed against the state the commit will be checked against
		var current models.Transaction
		err := tx.First(&current, id).Error
		if err != nil {
			return err
		}

		reversal, err := effect(current)
		if err != nil {
			return err
		}

		change, err := effect(updated)
		if err != nil {
			return err
		}

		deltas := make(map[uuid.UUID]decimal.Decimal)
		for accountID, delta := range reversal {
			deltas[accountID] = deltas[accountID].Sub(delta)
		}
		for accountID, delta := range change {
			deltas[accountID] = deltas[accountID].Add(delta)
		}

		err = apply(tx, current.BudgetID, deltas)
		if err != nil {
			return err
		}

		updated.DefaultModel = current.DefaultModel
		return tx.Save(&updated).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return updated, nil
}

// Delete removes a booked transaction and reverses its balance effect in
// one atomic unit.
func Delete(db *gorm.DB, id uuid.UUID) error {
	return inTransaction(db, func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.First(&transaction, id).Error
		if err != nil {
			return err
		}

		deltas, err := effect(transaction)
		if err != nil {
			return err
		}

		for accountID, delta := range deltas {
			deltas[accountID] = delta.Neg()
		}

		err = apply(tx, transaction.BudgetID, deltas)
		if err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
}

// validate checks a transaction before any write happens. It also
// normalizes references that are not used by the transaction type.
func validate(db *gorm.DB, t *models.Transaction) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if t.AccountID == uuid.Nil {
		return ErrAccountRequired
	}

	switch t.Type {
	case models.TransactionTypeTransfer:
		if t.ToAccountID == nil || *t.ToAccountID == uuid.Nil {
			return ErrTransferDestinationRequired
		}

		if *t.ToAccountID == t.AccountID {
			return models.ErrSourceDoesNotEqualDestination
		}

		if t.CategoryID != nil && *t.CategoryID != uuid.Nil {
			return ErrTransferCannotHaveCategory
		}
		t.CategoryID = nil

	case models.TransactionTypeExpense, models.TransactionTypeIncome:
		if t.CategoryID == nil || *t.CategoryID == uuid.Nil {
			return ErrCategoryRequired
		}

		var category models.Category
		err := db.First(&category, *t.CategoryID).Error
		if err != nil {
			return err
		}

		if string(category.Type) != string(t.Type) {
			return ErrCategoryTypeMismatch
		}

		leaf, err := category.IsLeaf(db)
		if err != nil {
			return err
		}

		if !leaf {
			return ErrCategoryNotLeaf
		}
		t.ToAccountID = nil

	default:
		return models.ErrTransactionTypeInvalid
	}

	return nil
}

// effect returns the signed balance effect of a transaction per account.
func effect(t models.Transaction) (map[uuid.UUID]decimal.Decimal, error) {
	deltas := make(map[uuid.UUID]decimal.Decimal)

	if t.Type == models.TransactionTypeTransfer {
		source, destination, err := TransferDeltas(t.Amount)
		if err != nil {
			return nil, err
		}

		deltas[t.AccountID] = deltas[t.AccountID].Add(source)
		deltas[*t.ToAccountID] = deltas[*t.ToAccountID].Add(destination)
		return deltas, nil
	}

	delta, err := Delta(t.Type, t.Amount)
	if err != nil {
		return nil, err
	}

	deltas[t.AccountID] = deltas[t.AccountID].Add(delta)
	return deltas, nil
}

// apply adds the deltas to the account balances. All accounts are read and
// written inside the caller's atomic unit, in a stable order.
func apply(tx *gorm.DB, budgetID uuid.UUID, deltas map[uuid.UUID]decimal.Decimal) error {
	ids := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, id := range ids {
		delta := deltas[id]
		if delta.IsZero() {
			continue
		}

		// Scoping the read to the budget makes accounts of other budgets
		// read as not found
		var account models.Account
		err := tx.Where("budget_id = ?", budgetID).First(&account, id).Error
		if err != nil {
			return err
		}

		err = tx.Model(&account).Update("balance", account.Balance.Add(delta)).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// inTransaction runs fn as one database transaction, retrying a bounded
// number of times when the store aborts on a concurrency conflict.
func inTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = db.Transaction(fn)
		if !isConflict(err) {
			return err
		}

		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}

	return err
}
