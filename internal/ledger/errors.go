package ledger

import (
	"errors"
	"strings"
)

// Validation errors. These are raised before any database write happens.
var (
	ErrAmountNotPositive            = errors.New("the amount must be larger than zero")
	ErrAccountRequired              = errors.New("an account must be set")
	ErrCategoryRequired             = errors.New("a category must be set for expense and income transactions")
	ErrCategoryNotLeaf              = errors.New("transactions can only be assigned to categories without child categories")
	ErrCategoryTypeMismatch         = errors.New("the category type does not match the transaction type")
	ErrTransferDestinationRequired  = errors.New("a destination account must be set for transfers")
	ErrTransferCannotHaveCategory   = errors.New("transfers cannot have a category")
	ErrRecurringTransferUnsupported = errors.New("recurring transactions cannot be transfers")
)

// ErrPartialMigration is returned when the legacy data migration was
// interrupted after some resources were already moved. The migration is
// best-effort, re-running it does not repair a partial move.
var ErrPartialMigration = errors.New("the legacy data migration did not complete")

// maxRetries is the number of times a conflicting atomic unit is retried
// before the conflict is surfaced to the caller.
const maxRetries = 3

// isConflict reports whether the error is a store-level concurrency
// conflict that is worth retrying.
func isConflict(err error) bool {
	if err == nil {
		return false
	}

	s := err.Error()

	// sqlite reports lock contention as busy or locked, postgres
	// aborts serialization conflicts with SQLSTATE 40001
	return strings.Contains(s, "database is locked") ||
		strings.Contains(s, "SQLITE_BUSY") ||
		strings.Contains(s, "SQLSTATE 40001")
}
