package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table. One row per (user, month);
// derived totals are never stored.
type BudgetModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_month"`
	Month       string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_budgets_user_month;index"`
	SavingsGoal decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Categories []BudgetCategoryModel `gorm:"foreignKey:BudgetID;references:ID;constraint:OnDelete:CASCADE"`
	Alerts     []BudgetAlertModel    `gorm:"foreignKey:BudgetID;references:ID;constraint:OnDelete:CASCADE"`
	User       *UserModel            `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// BudgetCategoryModel represents the budget_categories table.
type BudgetCategoryModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BudgetID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_categories_budget_name"`
	Name         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_budget_categories_budget_name"`
	BudgetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SpentAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Color        string          `gorm:"type:varchar(7)"`
	Position     int             `gorm:"not null;default:0"`
}

// TableName returns the table name for the BudgetCategoryModel.
func (BudgetCategoryModel) TableName() string {
	return "budget_categories"
}

// BudgetAlertModel represents the budget_alerts table. The unique index on
// (budget, category) enforces at most one alert per category.
type BudgetAlertModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BudgetID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_budget_alerts_budget_category"`
	Category  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_budget_alerts_budget_category"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Message   string    `gorm:"type:varchar(255);not null"`
	Threshold float64   `gorm:"not null"`
	IsRead    bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetAlertModel.
func (BudgetAlertModel) TableName() string {
	return "budget_alerts"
}

// ToEntity converts a BudgetModel with its children to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	budget := &entity.Budget{
		ID:          m.ID,
		UserID:      m.UserID,
		Month:       m.Month,
		SavingsGoal: m.SavingsGoal,
		Categories:  make([]entity.BudgetCategory, len(m.Categories)),
		Alerts:      make([]entity.BudgetAlert, len(m.Alerts)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i, c := range m.Categories {
		budget.Categories[i] = entity.BudgetCategory{
			ID:           c.ID,
			Name:         c.Name,
			BudgetAmount: c.BudgetAmount,
			SpentAmount:  c.SpentAmount,
			Color:        c.Color,
			Position:     c.Position,
		}
	}
	for i, a := range m.Alerts {
		budget.Alerts[i] = entity.BudgetAlert{
			ID:        a.ID,
			Category:  a.Category,
			Type:      entity.AlertType(a.Type),
			Message:   a.Message,
			Threshold: a.Threshold,
			IsRead:    a.IsRead,
			CreatedAt: a.CreatedAt,
		}
	}
	budget.SortCategories()
	return budget
}

// BudgetFromEntity converts a domain Budget entity to a BudgetModel with children.
func BudgetFromEntity(b *entity.Budget) *BudgetModel {
	m := &BudgetModel{
		ID:          b.ID,
		UserID:      b.UserID,
		Month:       b.Month,
		SavingsGoal: b.SavingsGoal,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		Categories:  make([]BudgetCategoryModel, len(b.Categories)),
		Alerts:      make([]BudgetAlertModel, len(b.Alerts)),
	}
	for i, c := range b.Categories {
		m.Categories[i] = BudgetCategoryModel{
			ID:           c.ID,
			BudgetID:     b.ID,
			Name:         c.Name,
			BudgetAmount: c.BudgetAmount,
			SpentAmount:  c.SpentAmount,
			Color:        c.Color,
			Position:     c.Position,
		}
	}
	for i, a := range b.Alerts {
		m.Alerts[i] = BudgetAlertModel{
			ID:        a.ID,
			BudgetID:  b.ID,
			Category:  a.Category,
			Type:      string(a.Type),
			Message:   a.Message,
			Threshold: a.Threshold,
			IsRead:    a.IsRead,
			CreatedAt: a.CreatedAt,
		}
	}
	return m
}
