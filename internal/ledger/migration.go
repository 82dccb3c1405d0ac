package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrUserRequired is returned when the migration is invoked without a user.
var ErrUserRequired = errors.New("a user ID must be set")

// MigrateLegacyIfNeeded moves data from the legacy single-tenant layout
// into a budget owned by the user.
//
// If the user is already a member of a budget, nothing happens. Otherwise a
// new budget is created and every legacy resource, recognizable by an unset
// budget reference, is re-homed into it.
//
// The discovery and the move are separate phases without a rollback: when
// the process dies mid-move, part of the data stays legacy and the next run
// moves the rest into a fresh budget. This is a known weakness of the
// legacy migration, it is surfaced as ErrPartialMigration and not repaired.
func MigrateLegacyIfNeeded(db *gorm.DB, userID, email string) (models.Budget, bool, error) {
	if userID == "" {
		return models.Budget{}, false, ErrUserRequired
	}

	// The member map is serialized, so membership is checked in memory.
	// Household installations have a handful of budgets at most.
	var budgets []models.Budget
	err := db.Find(&budgets).Error
	if err != nil {
		return models.Budget{}, false, err
	}

	for _, budget := range budgets {
		if _, ok := budget.Members[userID]; ok {
			return budget, false, nil
		}
	}

	budget := models.Budget{
		Name:    "Personal budget",
		OwnerID: userID,
		Members: map[string]string{userID: email},
	}

	err = db.Create(&budget).Error
	if err != nil {
		return models.Budget{}, false, err
	}

	migrated := false
	for _, model := range []interface{}{
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.RecurringTransaction{},
	} {
		res := db.Session(&gorm.Session{SkipHooks: true}).
			Model(model).
			Where("budget_id = ?", uuid.Nil).
			Update("budget_id", budget.ID)
		if res.Error != nil {
			if migrated {
				log.Error().Err(res.Error).Str("budget", budget.ID.String()).Msg("legacy migration interrupted")
				return budget, true, fmt.Errorf("%w: %s", ErrPartialMigration, res.Error)
			}

			return budget, false, res.Error
		}

		if res.RowsAffected > 0 {
			migrated = true
		}
	}

	return budget, migrated, nil
}
