package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title             string          `gorm:"type:varchar(100);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type              string          `gorm:"type:varchar(10);not null;index"`
	Category          string          `gorm:"type:varchar(50);not null;index"`
	Date              time.Time       `gorm:"not null;index"`
	Description       string          `gorm:"type:varchar(500)"`
	PaymentMethod     string          `gorm:"type:varchar(50)"`
	Tags              string          `gorm:"type:text"` // comma-separated
	IsRecurring       bool            `gorm:"default:false"`
	RecurringInterval string          `gorm:"type:varchar(20)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var tags []string
	if m.Tags != "" {
		tags = strings.Split(m.Tags, ",")
	}

	return &entity.Transaction{
		ID:                m.ID,
		UserID:            m.UserID,
		Title:             m.Title,
		Amount:            m.Amount,
		Type:              entity.TransactionType(m.Type),
		Category:          m.Category,
		Date:              m.Date,
		Description:       m.Description,
		PaymentMethod:     m.PaymentMethod,
		Tags:              tags,
		IsRecurring:       m.IsRecurring,
		RecurringInterval: m.RecurringInterval,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// TransactionFromEntity converts a domain Transaction entity to a TransactionModel.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                t.ID,
		UserID:            t.UserID,
		Title:             t.Title,
		Amount:            t.Amount,
		Type:              string(t.Type),
		Category:          t.Category,
		Date:              t.Date,
		Description:       t.Description,
		PaymentMethod:     t.PaymentMethod,
		Tags:              strings.Join(t.Tags, ","),
		IsRecurring:       t.IsRecurring,
		RecurringInterval: t.RecurringInterval,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
