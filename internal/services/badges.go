package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"amthub/internal/db"
	"amthub/internal/models"
)

var ErrAlreadyAwarded = errors.New("badge already awarded to this user")

// AwardBadge appends a ledger entry and recomputes the badges-earned counter
// in one transaction: both changes land or neither does.
func AwardBadge(userID, badgeID uint) (*models.UserBadge, error) {
	var entry models.UserBadge

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.UserBadge{}).
			Where("user_id = ? AND badge_id = ?", userID, badgeID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyAwarded
		}

		entry = models.UserBadge{
			UserID:   userID,
			BadgeID:  badgeID,
			EarnedAt: time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.UserBadge{}).
			Where("user_id = ?", userID).
			Count(&total).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("stat_badges_earned", total).Error
	})
	if err != nil {
		return nil, err
	}

	AddContributionAsync(userID, PointsBadgeAwarded, ActionBadgeAwarded)
	return &entry, nil
}

// CheckEligibility reports whether the user currently satisfies the badge
// criteria. It does not award anything.
func CheckEligibility(userID, badgeID uint) (bool, error) {
	var badge models.Badge
	if err := db.DB.First(&badge, badgeID).Error; err != nil {
		return false, err
	}
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return false, err
	}
	return badge.Eligible(user.Stats), nil
}

// AutoAwardBadges sweeps active users against every criteria badge and awards
// whatever is newly earned. Returns the number of awards made.
func AutoAwardBadges() (int, error) {
	var badges []models.Badge
	if err := db.DB.
		Where("min_events_attended > 0 OR min_contribution_score > 0").
		Find(&badges).Error; err != nil {
		return 0, err
	}

	var users []models.User
	if err := db.DB.Where("is_active = ?", true).Find(&users).Error; err != nil {
		return 0, err
	}

	awarded := 0
	for _, user := range users {
		for _, badge := range badges {
			if !badge.Eligible(user.Stats) {
				continue
			}
			if _, err := AwardBadge(user.ID, badge.ID); err != nil {
				if errors.Is(err, ErrAlreadyAwarded) {
					continue
				}
				return awarded, err
			}
			awarded++
		}
	}
	return awarded, nil
}
