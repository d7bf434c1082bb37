package main

import (
	"fmt"
	"time"

	"clubhub/internal/model"
	"clubhub/pkg/config"
	"clubhub/pkg/database"
	"clubhub/pkg/logger"

	"gorm.io/gorm"
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

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	professionals := []model.ProfessionalModel{
		{Name: "Laura Jimenez", DefaultRate: 0.20, IsActive: true},
		{Name: "Marc Oller", DefaultRate: 0.15, IsActive: true},
		{Name: "Sofia Ricci", DefaultRate: 0.25, IsActive: true},
	}

	proIDs := make([]string, 0, len(professionals))
	for i := range professionals {
		pro := &professionals[i]

		var existing model.ProfessionalModel
		result := db.Where("name = ?", pro.Name).First(&existing)
		if result.Error == nil {
			log.Info("Professional %s already exists, skipping", pro.Name)
			proIDs = append(proIDs, existing.ID)
			continue
		}

		if err := db.Create(pro).Error; err != nil {
			log.Error("Failed to create professional %s: %v", pro.Name, err)
			continue
		}

		log.Info("Created professional: %s (default rate %.2f)", pro.Name, pro.DefaultRate)
		proIDs = append(proIDs, pro.ID)
	}

	// One window per weekday, 09:00-21:00, for every seeded professional
	for _, proID := range proIDs {
		for weekday := 1; weekday <= 6; weekday++ {
			var existing model.AvailabilityWindowModel
			result := db.Where("resource_type = ? AND resource_id = ? AND weekday = ?",
				"professional", proID, weekday).First(&existing)
			if result.Error == nil {
				continue
			}

			window := &model.AvailabilityWindowModel{
				ResourceType: "professional",
				ResourceID:   proID,
				Weekday:      weekday,
				OpenMinute:   9 * 60,
				CloseMinute:  21 * 60,
			}
			if err := db.Create(window).Error; err != nil {
				log.Error("Failed to create window for professional %s: %v", proID, err)
			}
		}
	}
	log.Info("Created working-hour windows for %d professionals", len(proIDs))

	// A maintenance block next Monday morning for the first professional
	if len(proIDs) > 0 {
		now := time.Now().UTC()
		daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
		if daysUntilMonday == 0 {
			daysUntilMonday = 7
		}
		monday := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC).
			AddDate(0, 0, daysUntilMonday)

		var existing model.BlockModel
		result := db.Where("resource_type = ? AND resource_id = ? AND start_time = ?",
			"professional", proIDs[0], monday).First(&existing)
		if result.Error != nil {
			block := &model.BlockModel{
				ResourceType: "professional",
				ResourceID:   proIDs[0],
				StartTime:    monday,
				EndTime:      monday.Add(2 * time.Hour),
				Reason:       "team training",
			}
			if err := db.Create(block).Error; err != nil {
				log.Error("Failed to create block: %v", err)
			} else {
				log.Info("Created training block for %s", monday.Format(time.RFC3339))
			}
		}
	}

	return nil
}
