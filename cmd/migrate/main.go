package main

import (
	"fmt"

	"clubhub/internal/model"
	"clubhub/pkg/config"
	"clubhub/pkg/database"
	"clubhub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	err = db.AutoMigrate(
		&model.BookingModel{},
		&model.WalletModel{},
		&model.WalletTransactionModel{},
		&model.AvailabilityWindowModel{},
		&model.BlockModel{},
		&model.CommissionRecordModel{},
		&model.ProfessionalModel{},
		&model.ServiceRateOverrideModel{},
		&model.SettlementEventModel{},
	)
	if err != nil {
		log.Error("Failed to run migrations: %v", err)
		panic(err)
	}

	log.Info("Migrations applied successfully")
}
