package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/models"
	"gorm.io/gorm"
)

// RunDue materializes all active recurring transactions of a budget whose
// next execution date has passed.
//
// All materializations of one run are committed as one atomic unit: for
// each due template a transaction dated at the template's next execution
// date is created, the account balance is incremented and the next
// execution date is advanced by exactly one period. On failure nothing is
// persisted, so the run can safely be repeated.
//
// A template that has fallen behind by multiple periods executes once per
// run for its most overdue occurrence and is picked up again by the next
// run if it is still overdue.
//
// Returns the number of transactions created.
func RunDue(db *gorm.DB, budgetID uuid.UUID, now time.Time) (int, error) {
	var templates []models.RecurringTransaction
	err := db.
		Where("budget_id = ? AND active = ? AND next_execution <= ?", budgetID, true, now.In(time.UTC)).
		Find(&templates).Error
	if err != nil {
		return 0, err
	}

	if len(templates) == 0 {
		return 0, nil
	}

	err = inTransaction(db, func(tx *gorm.DB) error {
		for _, template := range templates {
			delta, err := Delta(template.Type, template.Amount)
			if err != nil {
				return err
			}

			categoryID := template.CategoryID
			transaction := models.Transaction{
				BudgetID:    template.BudgetID,
				Description: template.Description,
				Amount:      template.Amount,
				Date:        template.NextExecution,
				Type:        template.Type,
				AccountID:   template.AccountID,
				CategoryID:  &categoryID,
			}

			err = tx.Create(&transaction).Error
			if err != nil {
				return err
			}

			// The balance is incremented instead of read and written back
			// so that concurrent runs cannot lose an update
			res := tx.Model(&models.Account{}).
				Where("id = ?", template.AccountID).
				Update("balance", gorm.Expr("balance + ?", delta))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w account matching your query", models.ErrResourceNotFound)
			}

			err = tx.Model(&template).Update("next_execution", NextExecution(template)).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(templates), nil
}

// RunDueAll runs RunDue for every budget. Used by the startup pass and the
// daily in-process schedule.
func RunDueAll(db *gorm.DB, now time.Time) (int, error) {
	var budgets []models.Budget
	err := db.Find(&budgets).Error
	if err != nil {
		return 0, err
	}

	total := 0
	for _, budget := range budgets {
		n, err := RunDue(db, budget.ID, now)
		if err != nil {
			return total, err
		}

		total += n
	}

	return total, nil
}

// NextExecution returns the next execution date of a template, advanced by
// exactly one period.
//
// Monthly templates move to the next calendar month, on the template's day
// of month clamped to the length of that month, so a template for the 31st
// executes on the 30th or 28th in shorter months. Weekly templates move
// seven days ahead. The time of day is preserved.
func NextExecution(template models.RecurringTransaction) time.Time {
	current := template.NextExecution

	if template.Periodicity == models.PeriodicityWeekly {
		return current.AddDate(0, 0, 7)
	}

	year, month, _ := current.Date()

	day := template.DayOfMonth
	if day < 1 {
		day = current.Day()
	}

	if last := daysIn(year, month+1); day > last {
		day = last
	}

	return time.Date(year, month+1, day, current.Hour(), current.Minute(), current.Second(), current.Nanosecond(), current.Location())
}

// daysIn returns the number of days of a month. The month may be out of
// range, time.Date normalizes it.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
