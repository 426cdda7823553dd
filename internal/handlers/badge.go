package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"amthub/internal/db"
	"amthub/internal/models"
	"amthub/internal/services"
	"amthub/internal/utils"
)

type BadgeHandler struct{}

func NewBadgeHandler() *BadgeHandler {
	return &BadgeHandler{}
}

type badgeRequest struct {
	Name                 string `json:"name" validate:"required,max=100"`
	Description          string `json:"description" validate:"max=2000"`
	Category             string `json:"category" validate:"required,oneof=participation leadership contribution special"`
	Icon                 string `json:"icon" validate:"max=100"`
	MinEventsAttended    int    `json:"min_events_attended" validate:"gte=0"`
	MinContributionScore int    `json:"min_contribution_score" validate:"gte=0"`
}

// List returns all badges, optionally filtered by category.
func (h *BadgeHandler) List(c *gin.Context) {
	query := db.DB.Model(&models.Badge{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var badges []models.Badge
	if err := query.Order("category, name").Find(&badges).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// Get returns one badge with how many members hold it.
func (h *BadgeHandler) Get(c *gin.Context) {
	var badge models.Badge
	if err := db.DB.First(&badge, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "badge not found")
		return
	}

	var holders int64
	db.DB.Model(&models.UserBadge{}).Where("badge_id = ?", badge.ID).Count(&holders)

	c.JSON(http.StatusOK, gin.H{"badge": badge, "holders": holders})
}

// Create adds a badge definition.
func (h *BadgeHandler) Create(c *gin.Context) {
	var req badgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	badge := models.Badge{
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		Icon:                 req.Icon,
		MinEventsAttended:    req.MinEventsAttended,
		MinContributionScore: req.MinContributionScore,
	}
	if err := db.DB.Create(&badge).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"badge": badge})
}

// Update edits a badge definition.
func (h *BadgeHandler) Update(c *gin.Context) {
	var badge models.Badge
	if err := db.DB.First(&badge, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "badge not found")
		return
	}

	var req badgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	updates := map[string]interface{}{
		"name":                   req.Name,
		"description":            req.Description,
		"category":               req.Category,
		"icon":                   req.Icon,
		"min_events_attended":    req.MinEventsAttended,
		"min_contribution_score": req.MinContributionScore,
	}
	if err := db.DB.Model(&badge).Updates(updates).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badge": badge})
}

// Delete removes a badge and its award ledger rows.
func (h *BadgeHandler) Delete(c *gin.Context) {
	if err := db.DB.Delete(&models.Badge{}, c.Param("id")).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "badge deleted"})
}

type awardRequest struct {
	UserID  uint `json:"user_id" validate:"required"`
	BadgeID uint `json:"badge_id" validate:"required"`
}

// Award grants a badge to a member.
func (h *BadgeHandler) Award(c *gin.Context) {
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	entry, err := services.AwardBadge(req.UserID, req.BadgeID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyAwarded) {
			respondError(c, http.StatusConflict, "badge already awarded")
			return
		}
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"awarded": entry})
}

// Eligibility reports which badges a member qualifies for but has not
// yet received.
func (h *BadgeHandler) Eligibility(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, c.Param("userId")).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	var badges []models.Badge
	if err := db.DB.
		Where("min_events_attended > 0 OR min_contribution_score > 0").
		Find(&badges).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	held := map[uint]bool{}
	var awarded []models.UserBadge
	if err := db.DB.Where("user_id = ?", user.ID).Find(&awarded).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	for _, a := range awarded {
		held[a.BadgeID] = true
	}

	eligible := make([]models.Badge, 0)
	for _, badge := range badges {
		if !held[badge.ID] && badge.Eligible(user.Stats) {
			eligible = append(eligible, badge)
		}
	}
	c.JSON(http.StatusOK, gin.H{"eligible": eligible})
}

// CheckEligibility reports whether one member meets one badge's criteria.
func (h *BadgeHandler) CheckEligibility(c *gin.Context) {
	userID := uint(utils.StringToInt(c.Param("userId")))
	badgeID := uint(utils.StringToInt(c.Param("id")))

	ok, err := services.CheckEligibility(userID, badgeID)
	if err != nil {
		respondError(c, http.StatusNotFound, "user or badge not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": ok})
}

// UserBadges returns the badges a member has earned. Mounted under the user
// routes, so the id param is the user's.
func (h *BadgeHandler) UserBadges(c *gin.Context) {
	var awarded []models.UserBadge
	if err := db.DB.Preload("Badge").
		Where("user_id = ?", c.Param("id")).
		Order("earned_at DESC").
		Find(&awarded).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": awarded})
}

// AutoAward sweeps all active members and grants every badge whose
// criteria they meet.
func (h *BadgeHandler) AutoAward(c *gin.Context) {
	awarded, err := services.AutoAwardBadges()
	if err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"awarded": awarded})
}

// Leaderboard lists the members holding the most badges, cached briefly.
func (h *BadgeHandler) Leaderboard(c *gin.Context) {
	cache := utils.GetCache()
	if cached := cache.Get("badge_leaderboard"); cached != nil {
		c.JSON(http.StatusOK, cached.(gin.H))
		return
	}

	var users []models.User
	if err := db.DB.
		Where("is_active = ? AND stat_badges_earned > 0", true).
		Order("stat_badges_earned DESC, stat_contribution_score DESC").
		Limit(20).
		Find(&users).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	result := gin.H{"leaderboard": users}
	cache.Set("badge_leaderboard", result, 5*time.Minute)
	c.JSON(http.StatusOK, result)
}

// StatsOverview returns badge totals, cached briefly.
func (h *BadgeHandler) StatsOverview(c *gin.Context) {
	cache := utils.GetCache()
	if cached := cache.Get("badge_stats_overview"); cached != nil {
		c.JSON(http.StatusOK, cached.(gin.H))
		return
	}

	var total, awarded int64
	db.DB.Model(&models.Badge{}).Count(&total)
	db.DB.Model(&models.UserBadge{}).Count(&awarded)

	var byCategory []struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}
	db.DB.Model(&models.Badge{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&byCategory)

	stats := gin.H{
		"total":       total,
		"awarded":     awarded,
		"by_category": byCategory,
	}
	cache.Set("badge_stats_overview", stats, 5*time.Minute)
	c.JSON(http.StatusOK, stats)
}
