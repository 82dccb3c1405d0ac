// Package ledger implements the consistency engine for account balances.
//
// Every mutation of an account balance happens here, inside one database
// transaction together with the transaction record that causes it. Nothing
// else in the backend writes balances.
package ledger

import (
	"github.com/homeledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Delta returns the signed effect of an expense or income transaction on
// its account balance: expenses subtract the amount, income adds it.
//
// Callers must validate the amount before building transactions, Delta only
// guards against programming errors.
func Delta(t models.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}

	switch t {
	case models.TransactionTypeExpense:
		return amount.Neg(), nil
	case models.TransactionTypeIncome:
		return amount, nil
	}

	return decimal.Zero, models.ErrTransactionTypeInvalid
}

// TransferDeltas returns the signed effects of a transfer on its source and
// destination account balances.
func TransferDeltas(amount decimal.Decimal) (source, destination decimal.Decimal, err error) {
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, ErrAmountNotPositive
	}

	return amount.Neg(), amount, nil
}
