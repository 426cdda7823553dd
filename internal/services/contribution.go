package services

import (
	"gorm.io/gorm"

	"amthub/internal/db"
	"amthub/internal/models"
)

// Contribution actions
const (
	ActionEventAttended   = "Attended an event"
	ActionEventOrganized  = "Organized an event"
	ActionFeedbackGiven   = "Submitted event feedback"
	ActionBadgeAwarded    = "Earned a badge"
	ActionChapterApproved = "Chapter application approved"
)

// Contribution values
const (
	PointsEventAttended   = 5
	PointsEventOrganized  = 10
	PointsFeedbackGiven   = 1
	PointsBadgeAwarded    = 3
	PointsChapterApproved = 15
)

// AddContribution records a score change and updates the denormalized counter
// in one transaction.
func AddContribution(userID uint, amount int, action string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.ContributionLog{
			UserID: userID,
			Amount: amount,
			Action: action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("stat_contribution_score", gorm.Expr("stat_contribution_score + ?", amount)).
			Error; err != nil {
			return err
		}

		return nil
	})
}

// AddContributionAsync records a score change without blocking the request.
func AddContributionAsync(userID uint, amount int, action string) {
	go func() {
		_ = AddContribution(userID, amount, action)
	}()
}
