package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"amthub/internal/db"
	"amthub/internal/middleware"
	"amthub/internal/models"
	"amthub/internal/utils"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// List returns active members, filterable by role, country and chapter.
func (h *UserHandler) List(c *gin.Context) {
	query := db.DB.Model(&models.User{}).Where("is_active = ?", true)

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}
	if chapter := c.Query("chapter_id"); chapter != "" {
		query = query.Where("chapter_id = ?", utils.StringToInt(chapter))
	}

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := utils.StringToInt(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Preload("Chapter").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "page": page})
}

// Get returns one member's public record.
func (h *UserHandler) Get(c *gin.Context) {
	var user models.User
	if err := db.DB.Preload("Chapter").Preload("Badges.Badge").
		First(&user, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	tierName, tierIcon := utils.GetMemberTier(user.Stats.ContributionScore)
	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"tier":       tierName,
		"tier_icon":  tierIcon,
		"days_since": utils.GetDaysSinceJoined(user.JoinedAt),
	})
}

type adminUserUpdateRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof='Member' 'Leader' 'Ambassador' 'Admin' 'Super Admin'"`
	IsActive *bool   `json:"is_active"`
}

// Update lets admins set role and active flag. Role transitions carry no
// workflow; any role may become any other.
func (h *UserHandler) Update(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	var req adminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			handleWriteError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Delete soft-deletes by clearing the active flag. Records are never removed.
func (h *UserHandler) Delete(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	if err := db.DB.Model(&user).UpdateColumn("is_active", false).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deactivated"})
}

// ByChapter lists active members of one chapter.
func (h *UserHandler) ByChapter(c *gin.Context) {
	var users []models.User
	if err := db.DB.
		Where("chapter_id = ? AND is_active = ?", c.Param("chapterId"), true).
		Order("created_at").
		Find(&users).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Leaders lists active members holding a leadership role.
func (h *UserHandler) Leaders(c *gin.Context) {
	var users []models.User
	if err := db.DB.Preload("Chapter").
		Where("role IN ? AND is_active = ?", models.LeadershipRoles, true).
		Order("role DESC, created_at").
		Find(&users).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaders": users})
}

// StatsOverview returns member totals, cached briefly.
func (h *UserHandler) StatsOverview(c *gin.Context) {
	cache := utils.GetCache()
	if cached := cache.Get("user_stats_overview"); cached != nil {
		c.JSON(http.StatusOK, cached.(gin.H))
		return
	}

	var total, active, verified, withChapter int64
	db.DB.Model(&models.User{}).Count(&total)
	db.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&active)
	db.DB.Model(&models.User{}).Where("is_email_verified = ?", true).Count(&verified)
	db.DB.Model(&models.User{}).Where("chapter_id IS NOT NULL").Count(&withChapter)

	stats := gin.H{
		"total":        total,
		"active":       active,
		"verified":     verified,
		"with_chapter": withChapter,
	}
	cache.Set("user_stats_overview", stats, 5*time.Minute)
	c.JSON(http.StatusOK, stats)
}

type joinChapterRequest struct {
	ChapterID uint `json:"chapter_id" validate:"required"`
}

// JoinChapter attaches a member to one chapter. A member belongs to at most
// one chapter; joining replaces the previous affiliation.
func (h *UserHandler) JoinChapter(c *gin.Context) {
	current := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	if current.ID != uint(id) && !current.IsLeadership() {
		respondError(c, http.StatusForbidden, "cannot modify another member's chapter")
		return
	}

	var req joinChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var chapter models.Chapter
	if err := db.DB.First(&chapter, req.ChapterID).Error; err != nil {
		respondError(c, http.StatusNotFound, "chapter not found")
		return
	}
	if chapter.Status != models.ChapterApproved {
		respondError(c, http.StatusBadRequest, "chapter is not approved yet")
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("chapter_id", chapter.ID).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined chapter", "chapter": chapter})
}

// LeaveChapter clears the member's chapter affiliation.
func (h *UserHandler) LeaveChapter(c *gin.Context) {
	current := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	if current.ID != uint(id) && !current.IsLeadership() {
		respondError(c, http.StatusForbidden, "cannot modify another member's chapter")
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("chapter_id", nil).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "left chapter"})
}
