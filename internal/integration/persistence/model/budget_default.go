package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// BudgetDefaultModel represents the budget_defaults table: the per-user
// category template consulted when a month's budget is lazily created.
type BudgetDefaultModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_defaults_user_name"`
	Name     string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_budget_defaults_user_name"`
	Amount   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Color    string          `gorm:"type:varchar(7)"`
	Position int             `gorm:"not null;default:0"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the BudgetDefaultModel.
func (BudgetDefaultModel) TableName() string {
	return "budget_defaults"
}

// ToEntity converts a BudgetDefaultModel to a domain BudgetDefault entity.
func (m *BudgetDefaultModel) ToEntity() *entity.BudgetDefault {
	return &entity.BudgetDefault{
		ID:       m.ID,
		UserID:   m.UserID,
		Name:     m.Name,
		Amount:   m.Amount,
		Color:    m.Color,
		Position: m.Position,
	}
}

// BudgetDefaultFromEntity converts a domain BudgetDefault entity to a BudgetDefaultModel.
func BudgetDefaultFromEntity(d *entity.BudgetDefault) *BudgetDefaultModel {
	return &BudgetDefaultModel{
		ID:       d.ID,
		UserID:   d.UserID,
		Name:     d.Name,
		Amount:   d.Amount,
		Color:    d.Color,
		Position: d.Position,
	}
}
