package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
//
// ApplyExpenseDelta runs as a read-modify-write inside one database
// transaction with the budget row locked, so concurrent ledger writes for
// the same (user, month) serialize instead of losing updates.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{db: db}
}

// Create persists a new budget with its categories and alerts.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	if err := r.db.WithContext(ctx).Create(budgetModel).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerror.ErrBudgetAlreadyExists
		}
		return err
	}
	return nil
}

// FindByUserAndMonth retrieves the budget for a user and month key.
func (r *budgetRepository) FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month string) (*entity.Budget, error) {
	budgetModel, err := r.findWithChildren(r.db.WithContext(ctx), userID, month, false)
	if err != nil {
		return nil, err
	}
	return budgetModel.ToEntity(), nil
}

// FindByUserAndYear retrieves all budgets of a user within one calendar year.
func (r *budgetRepository) FindByUserAndYear(ctx context.Context, userID uuid.UUID, year int) ([]*entity.Budget, error) {
	prefix := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006") + "-%"

	var budgetModels []model.BudgetModel
	result := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Alerts").
		Where("user_id = ? AND month LIKE ?", userID, prefix).
		Order("month ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets, nil
}

// Replace persists the full current state of the budget.
func (r *budgetRepository) Replace(ctx context.Context, budget *entity.Budget) error {
	budget.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.BudgetModel{}).
			Where("id = ?", budget.ID).
			Updates(map[string]any{
				"savings_goal": budget.SavingsGoal,
				"updated_at":   budget.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrBudgetNotFound
		}

		if err := tx.Where("budget_id = ?", budget.ID).Delete(&model.BudgetCategoryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&model.BudgetAlertModel{}).Error; err != nil {
			return err
		}

		budgetModel := model.BudgetFromEntity(budget)
		if len(budgetModel.Categories) > 0 {
			if err := tx.Create(&budgetModel.Categories).Error; err != nil {
				return err
			}
		}
		if len(budgetModel.Alerts) > 0 {
			if err := tx.Create(&budgetModel.Alerts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyExpenseDelta atomically adjusts one category's spent amount.
func (r *budgetRepository) ApplyExpenseDelta(ctx context.Context, userID uuid.UUID, month, category string, amount decimal.Decimal, direction adapter.DeltaDirection) (*entity.Budget, error) {
	var budget *entity.Budget

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		budgetModel, err := r.findOrCreateLocked(tx, userID, month)
		if err != nil {
			return err
		}

		budget = budgetModel.ToEntity()

		c := budget.Category(category)
		if c == nil {
			// Spend in an unconfigured category is tracked with a zero limit.
			newCategory := model.BudgetCategoryModel{
				ID:           uuid.New(),
				BudgetID:     budget.ID,
				Name:         category,
				BudgetAmount: decimal.Zero,
				SpentAmount:  decimal.Zero,
				Position:     len(budget.Categories),
			}
			if err := tx.Create(&newCategory).Error; err != nil {
				return err
			}
			budget.Categories = append(budget.Categories, entity.BudgetCategory{
				ID:           newCategory.ID,
				Name:         newCategory.Name,
				BudgetAmount: newCategory.BudgetAmount,
				SpentAmount:  newCategory.SpentAmount,
				Position:     newCategory.Position,
			})
			c = budget.Category(category)
		}

		switch direction {
		case adapter.DeltaDecrease:
			c.SpentAmount = c.SpentAmount.Sub(amount)
			if c.SpentAmount.IsNegative() {
				c.SpentAmount = decimal.Zero
			}
		default:
			c.SpentAmount = c.SpentAmount.Add(amount)
		}
		budget.RefreshCategoryAlert(category)

		result := tx.Model(&model.BudgetCategoryModel{}).
			Where("id = ?", c.ID).
			Update("spent_amount", c.SpentAmount)
		if result.Error != nil {
			return result.Error
		}

		if err := r.replaceCategoryAlert(tx, budget, category); err != nil {
			return err
		}

		budget.UpdatedAt = time.Now().UTC()
		return tx.Model(&model.BudgetModel{}).
			Where("id = ?", budget.ID).
			Update("updated_at", budget.UpdatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// MarkAlertRead marks one alert read.
func (r *budgetRepository) MarkAlertRead(ctx context.Context, budgetID, alertID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alertModel model.BudgetAlertModel
		result := tx.Where("id = ? AND budget_id = ?", alertID, budgetID).First(&alertModel)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrAlertNotFound
			}
			return result.Error
		}
		if alertModel.IsRead {
			return nil
		}
		return tx.Model(&model.BudgetAlertModel{}).
			Where("id = ?", alertID).
			Update("is_read", true).Error
	})
}

// FindDefaults returns the user's default category-limit template.
func (r *budgetRepository) FindDefaults(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetDefault, error) {
	var defaultModels []model.BudgetDefaultModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&defaultModels)
	if result.Error != nil {
		return nil, result.Error
	}

	defaults := make([]*entity.BudgetDefault, len(defaultModels))
	for i := range defaultModels {
		defaults[i] = defaultModels[i].ToEntity()
	}
	return defaults, nil
}

// ReplaceDefaults replaces the user's default category-limit template.
func (r *budgetRepository) ReplaceDefaults(ctx context.Context, userID uuid.UUID, defaults []*entity.BudgetDefault) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.BudgetDefaultModel{}).Error; err != nil {
			return err
		}
		for _, d := range defaults {
			if err := tx.Create(model.BudgetDefaultFromEntity(d)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// findOrCreateLocked loads the (user, month) budget with its children under
// a row lock, seeding it from the user's defaults when absent. A unique-key
// race with a concurrent creator falls back to re-fetching.
func (r *budgetRepository) findOrCreateLocked(tx *gorm.DB, userID uuid.UUID, month string) (*model.BudgetModel, error) {
	budgetModel, err := r.findWithChildren(tx, userID, month, true)
	if err == nil {
		return budgetModel, nil
	}
	if !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, err
	}

	seeded, err := r.seedFromDefaults(tx, userID, month)
	if err != nil {
		return nil, err
	}
	return r.createSeededOrRefetch(tx, seeded, userID, month)
}

// createSeededOrRefetch inserts a seeded budget, falling back to re-fetching
// the row a concurrent creator won the race for. The insert runs under a
// savepoint because postgres aborts the whole transaction on a constraint
// violation, which would poison the re-fetch.
func (r *budgetRepository) createSeededOrRefetch(tx *gorm.DB, seeded *model.BudgetModel, userID uuid.UUID, month string) (*model.BudgetModel, error) {
	if err := tx.SavePoint("seed_budget").Error; err != nil {
		return nil, err
	}
	if err := tx.Create(seeded).Error; err != nil {
		if isUniqueViolation(err) {
			if rbErr := tx.RollbackTo("seed_budget").Error; rbErr != nil {
				return nil, rbErr
			}
			return r.findWithChildren(tx, userID, month, true)
		}
		return nil, err
	}
	return seeded, nil
}

// findWithChildren loads a budget row with categories and alerts, optionally
// taking a row lock on the budget. The lock clause is only emitted on
// postgres; sqlite serializes write transactions on its own.
func (r *budgetRepository) findWithChildren(tx *gorm.DB, userID uuid.UUID, month string, lock bool) (*model.BudgetModel, error) {
	query := tx.Preload("Categories").Preload("Alerts")
	if lock && tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: model.BudgetModel{}.TableName()}})
	}

	var budgetModel model.BudgetModel
	result := query.Where("user_id = ? AND month = ?", userID, month).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return &budgetModel, nil
}

// seedFromDefaults builds a fresh budget model from the user's default
// category template and default savings goal.
func (r *budgetRepository) seedFromDefaults(tx *gorm.DB, userID uuid.UUID, month string) (*model.BudgetModel, error) {
	now := time.Now().UTC()
	budgetModel := &model.BudgetModel{
		ID:          uuid.New(),
		UserID:      userID,
		Month:       month,
		SavingsGoal: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var userModel model.UserModel
	if err := tx.Where("id = ?", userID).First(&userModel).Error; err == nil {
		budgetModel.SavingsGoal = userModel.DefaultSavingsGoal
	}

	var defaultModels []model.BudgetDefaultModel
	if err := tx.Where("user_id = ?", userID).Order("position ASC").Find(&defaultModels).Error; err != nil {
		return nil, err
	}
	for i, d := range defaultModels {
		budgetModel.Categories = append(budgetModel.Categories, model.BudgetCategoryModel{
			ID:           uuid.New(),
			BudgetID:     budgetModel.ID,
			Name:         d.Name,
			BudgetAmount: d.Amount,
			SpentAmount:  decimal.Zero,
			Color:        d.Color,
			Position:     i,
		})
	}
	return budgetModel, nil
}

// replaceCategoryAlert syncs one category's alert row with the entity state
// computed by the threshold policy.
func (r *budgetRepository) replaceCategoryAlert(tx *gorm.DB, budget *entity.Budget, category string) error {
	if err := tx.Where("budget_id = ? AND category = ?", budget.ID, category).
		Delete(&model.BudgetAlertModel{}).Error; err != nil {
		return err
	}

	alert := budget.Alert(category)
	if alert == nil {
		return nil
	}
	return tx.Create(&model.BudgetAlertModel{
		ID:        alert.ID,
		BudgetID:  budget.ID,
		Category:  alert.Category,
		Type:      string(alert.Type),
		Message:   alert.Message,
		Threshold: alert.Threshold,
		IsRead:    alert.IsRead,
		CreatedAt: alert.CreatedAt,
	}).Error
}

// isUniqueViolation reports whether err is a unique-constraint violation on
// any of the supported database engines.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
