package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sea-catering/backend/pkg/config"
	"github.com/sea-catering/backend/pkg/db"
	"github.com/sea-catering/backend/pkg/db/models"
	"github.com/sea-catering/backend/pkg/enums"
	"github.com/sea-catering/backend/pkg/logger"
	"github.com/sea-catering/backend/pkg/security"
)

// Prices are in IDR minor units (whole rupiah).
var seedPlans = []models.Plan{
	{Name: "Diet Plan", Slug: "diet", Description: "Portion-controlled meals for weight management.", BasePrice: 30000, Active: true},
	{Name: "Protein Plan", Slug: "protein", Description: "High-protein meals for active lifestyles.", BasePrice: 40000, Active: true},
	{Name: "Royal Plan", Slug: "royal", Description: "Premium ingredients, chef-curated menus.", BasePrice: 60000, Active: true},
}

var seedMealTypes = []string{"Breakfast", "Lunch", "Dinner"}

var seedDeliveryDays = []struct {
	name string
	dow  int
}{
	{"Sunday", 0},
	{"Monday", 1},
	{"Tuesday", 2},
	{"Wednesday", 3},
	{"Thursday", 4},
	{"Friday", 5},
	{"Saturday", 6},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "database readiness", dbClient.EnsureReady(ctx, cfg.DB, logg))

	start := time.Now()
	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := seedCatalog(tx); err != nil {
			return err
		}
		return seedAdmin(tx, cfg)
	})
	requireResource(ctx, logg, "seeding", err)

	logg.Info(logg.WithFields(ctx, map[string]any{
		"elapsed_ms": time.Since(start).Milliseconds(),
	}), "seed completed")
}

func seedCatalog(tx *gorm.DB) error {
	for _, plan := range seedPlans {
		row := plan
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "base_price", "active"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("seed plan %s: %w", plan.Slug, err)
		}
	}

	for _, name := range seedMealTypes {
		row := models.MealType{Name: name, Active: true}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("seed meal type %s: %w", name, err)
		}
	}

	for _, day := range seedDeliveryDays {
		row := models.DeliveryDay{Name: day.name, DayOfWeek: day.dow, Active: true}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("seed delivery day %s: %w", day.name, err)
		}
	}
	return nil
}

// seedAdmin provisions the back-office account when SEACATERING_ADMIN_EMAIL
// and SEACATERING_ADMIN_PASSWORD are set. Existing accounts are left alone.
func seedAdmin(tx *gorm.DB, cfg *config.Config) error {
	email := os.Getenv("SEACATERING_ADMIN_EMAIL")
	password := os.Getenv("SEACATERING_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Name:         "SEA Catering Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	return nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
