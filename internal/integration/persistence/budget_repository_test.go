package persistence

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budgetwise/backend/internal/domain/entity"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.BudgetModel{},
		&model.BudgetCategoryModel{},
		&model.BudgetAlertModel{},
		&model.BudgetDefaultModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestCreateSeededOrRefetch(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("a fresh month inserts the seeded budget", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewBudgetRepository(db).(*budgetRepository)

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			seeded, err := repo.seedFromDefaults(tx, userID, "2026-08")
			if err != nil {
				return err
			}
			got, err := repo.createSeededOrRefetch(tx, seeded, userID, "2026-08")
			if err != nil {
				return err
			}
			if got.ID != seeded.ID {
				t.Errorf("expected the seeded budget back, got %s", got.ID)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("a unique violation falls back to the existing row", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewBudgetRepository(db).(*budgetRepository)

		existing := entity.NewBudget(userID, "2026-08")
		if err := repo.Create(ctx, existing); err != nil {
			t.Fatalf("failed to create existing budget: %v", err)
		}

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			seeded, err := repo.seedFromDefaults(tx, userID, "2026-08")
			if err != nil {
				return err
			}
			got, err := repo.createSeededOrRefetch(tx, seeded, userID, "2026-08")
			if err != nil {
				return err
			}
			if got.ID != existing.ID {
				t.Errorf("expected the existing budget %s, got %s", existing.ID, got.ID)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
