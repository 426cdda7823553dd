package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"amthub/internal/db"
	"amthub/internal/models"
	"amthub/internal/services"
	"amthub/internal/utils"
)

type ChapterHandler struct{}

func NewChapterHandler() *ChapterHandler {
	return &ChapterHandler{}
}

type chapterRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=5000"`
	Country     string `json:"country" validate:"required"`
	City        string `json:"city" validate:"required"`
}

// List returns chapters, approved only unless an admin asks otherwise.
func (h *ChapterHandler) List(c *gin.Context) {
	query := db.DB.Model(&models.Chapter{})

	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", models.ChapterApproved)
	}

	var chapters []models.Chapter
	if err := query.Order("name").Find(&chapters).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": chapters})
}

// Get returns one chapter with its rendered description and member count.
func (h *ChapterHandler) Get(c *gin.Context) {
	var chapter models.Chapter
	if err := db.DB.First(&chapter, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "chapter not found")
		return
	}

	var memberCount int64
	db.DB.Model(&models.User{}).
		Where("chapter_id = ? AND is_active = ?", chapter.ID, true).
		Count(&memberCount)

	c.JSON(http.StatusOK, gin.H{
		"chapter":          chapter,
		"description_html": utils.RenderMarkdown(chapter.Description),
		"member_count":     memberCount,
	})
}

// Create registers a chapter application in pending status.
func (h *ChapterHandler) Create(c *gin.Context) {
	var req chapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	chapter := models.Chapter{
		Name:        req.Name,
		Description: req.Description,
		Country:     req.Country,
		City:        req.City,
		Status:      models.ChapterPending,
		FoundedAt:   time.Now(),
	}
	if err := db.DB.Create(&chapter).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chapter": chapter})
}

// Update edits chapter fields.
func (h *ChapterHandler) Update(c *gin.Context) {
	var chapter models.Chapter
	if err := db.DB.First(&chapter, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "chapter not found")
		return
	}

	var req chapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"country":     req.Country,
		"city":        req.City,
	}
	if err := db.DB.Model(&chapter).Updates(updates).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter": chapter})
}

// Delete removes a chapter; member affiliations are nulled by the constraint.
func (h *ChapterHandler) Delete(c *gin.Context) {
	if err := db.DB.Delete(&models.Chapter{}, c.Param("id")).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chapter deleted"})
}

// ByCountry lists approved chapters in one country.
func (h *ChapterHandler) ByCountry(c *gin.Context) {
	var chapters []models.Chapter
	if err := db.DB.
		Where("country = ? AND status = ?", c.Param("country"), models.ChapterApproved).
		Order("city").
		Find(&chapters).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": chapters})
}

// Pending lists chapter applications awaiting approval.
func (h *ChapterHandler) Pending(c *gin.Context) {
	var chapters []models.Chapter
	if err := db.DB.
		Where("status = ?", models.ChapterPending).
		Order("created_at").
		Find(&chapters).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": chapters})
}

// Approve flips a pending chapter to approved.
func (h *ChapterHandler) Approve(c *gin.Context) {
	var chapter models.Chapter
	if err := db.DB.First(&chapter, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "chapter not found")
		return
	}
	if chapter.Status == models.ChapterApproved {
		respondError(c, http.StatusBadRequest, "chapter is already approved")
		return
	}

	if err := db.DB.Model(&chapter).UpdateColumn("status", models.ChapterApproved).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter": chapter})
}

type chapterLeaderRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// AddLeader promotes a member to Leader of this chapter.
func (h *ChapterHandler) AddLeader(c *gin.Context) {
	var chapter models.Chapter
	if err := db.DB.First(&chapter, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "chapter not found")
		return
	}

	var req chapterLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	updates := map[string]interface{}{"chapter_id": chapter.ID}
	if user.Role == models.RoleMember {
		updates["role"] = models.RoleLeader
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	services.AddContributionAsync(user.ID, services.PointsChapterApproved, services.ActionChapterApproved)
	c.JSON(http.StatusOK, gin.H{"message": "leader added", "user": user})
}

// RemoveLeader demotes a chapter leader back to Member.
func (h *ChapterHandler) RemoveLeader(c *gin.Context) {
	var user models.User
	if err := db.DB.
		Where("id = ? AND chapter_id = ?", c.Param("userId"), c.Param("id")).
		First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, "leader not found in this chapter")
		return
	}
	if user.Role != models.RoleLeader {
		respondError(c, http.StatusBadRequest, "user is not a chapter leader")
		return
	}

	if err := db.DB.Model(&user).UpdateColumn("role", models.RoleMember).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "leader removed"})
}

// StatsOverview returns chapter totals, cached briefly.
func (h *ChapterHandler) StatsOverview(c *gin.Context) {
	cache := utils.GetCache()
	if cached := cache.Get("chapter_stats_overview"); cached != nil {
		c.JSON(http.StatusOK, cached.(gin.H))
		return
	}

	var total, approved, pending, countries int64
	db.DB.Model(&models.Chapter{}).Count(&total)
	db.DB.Model(&models.Chapter{}).Where("status = ?", models.ChapterApproved).Count(&approved)
	db.DB.Model(&models.Chapter{}).Where("status = ?", models.ChapterPending).Count(&pending)
	db.DB.Model(&models.Chapter{}).Distinct("country").Count(&countries)

	stats := gin.H{
		"total":     total,
		"approved":  approved,
		"pending":   pending,
		"countries": countries,
	}
	cache.Set("chapter_stats_overview", stats, 5*time.Minute)
	c.JSON(http.StatusOK, stats)
}
