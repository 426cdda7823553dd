package db

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"amthub/internal/models"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=amthub port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Chapter{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Event{},
		&models.EventRegistration{},
		&models.ContributionLog{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedBadges()
}

func seedBadges() {
	var count int64
	DB.Model(&models.Badge{}).Count(&count)
	if count > 0 {
		log.Println("Badges already seeded, skipping")
		return
	}

	badges := []models.Badge{
		{Name: "First Steps", Description: "Attended a first community event", Category: models.BadgeCategoryParticipation, Icon: "👣", MinEventsAttended: 1},
		{Name: "Regular", Description: "Attended five community events", Category: models.BadgeCategoryParticipation, Icon: "📅", MinEventsAttended: 5},
		{Name: "Dedicated", Description: "Attended twenty community events", Category: models.BadgeCategoryParticipation, Icon: "🔥", MinEventsAttended: 20},
		{Name: "Contributor", Description: "Reached 100 contribution points", Category: models.BadgeCategoryContribution, Icon: "⭐", MinContributionScore: 100},
		{Name: "Pillar", Description: "Reached 500 contribution points", Category: models.BadgeCategoryContribution, Icon: "🏛️", MinContributionScore: 500},
		{Name: "Founding Member", Description: "Recognized by the community team", Category: models.BadgeCategorySpecial, Icon: "🎖️"},
	}

	for _, badge := range badges {
		if err := DB.Create(&badge).Error; err != nil {
			log.Printf("Failed to create badge %s: %v", badge.Name, err)
		}
	}
	log.Println("Initial badges created successfully")
}
