package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"amthub/internal/db"
	"amthub/internal/middleware"
	"amthub/internal/models"
	"amthub/internal/services"
	"amthub/internal/utils"
)

type EventHandler struct {
	mailService *services.MailService
}

func NewEventHandler() *EventHandler {
	return &EventHandler{
		mailService: services.NewMailService(),
	}
}

type eventRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=10000"`
	ChapterID   *uint      `json:"chapter_id"`
	Location    string     `json:"location" validate:"max=200"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    int        `json:"capacity" validate:"gte=0"`
}

// List returns events, filterable by chapter and time window.
func (h *EventHandler) List(c *gin.Context) {
	query := db.DB.Model(&models.Event{}).Preload("Chapter")

	if chapter := c.Query("chapter_id"); chapter != "" {
		query = query.Where("chapter_id = ?", utils.StringToInt(chapter))
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("starts_at > ?", time.Now())
	}

	var events []models.Event
	if err := query.Order("starts_at DESC").Limit(100).Find(&events).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Get returns one event with rendered description and registration count.
func (h *EventHandler) Get(c *gin.Context) {
	var event models.Event
	if err := db.DB.Preload("Chapter").First(&event, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}

	var registered int64
	db.DB.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&registered)

	c.JSON(http.StatusOK, gin.H{
		"event":            event,
		"description_html": utils.RenderMarkdown(event.Description),
		"registered":       registered,
	})
}

// Create schedules an event and credits the organizer.
func (h *EventHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		ChapterID:   req.ChapterID,
		CreatedByID: user.ID,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if err := db.DB.Create(&event).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	services.AddContributionAsync(user.ID, services.PointsEventOrganized, services.ActionEventOrganized)
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// Update edits event fields.
func (h *EventHandler) Update(c *gin.Context) {
	var event models.Event
	if err := db.DB.First(&event, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"chapter_id":  req.ChapterID,
		"location":    req.Location,
		"starts_at":   req.StartsAt,
		"capacity":    req.Capacity,
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if err := db.DB.Model(&event).Updates(updates).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// Delete removes an event and its registrations.
func (h *EventHandler) Delete(c *gin.Context) {
	if err := db.DB.Delete(&models.Event{}, c.Param("id")).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// Register signs the current member up and emails the confirmation code.
func (h *EventHandler) Register(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var event models.Event
	if err := db.DB.First(&event, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}
	if !event.StartsAt.After(time.Now()) {
		respondError(c, http.StatusBadRequest, "event has already started")
		return
	}

	if event.Capacity > 0 {
		var registered int64
		db.DB.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&registered)
		if registered >= int64(event.Capacity) {
			respondError(c, http.StatusConflict, "event is at capacity")
			return
		}
	}

	registration := models.EventRegistration{
		EventID:          event.ID,
		UserID:           user.ID,
		ConfirmationCode: uuid.NewString(),
	}
	if err := db.DB.Create(&registration).Error; err != nil {
		// unique (event, user) index rejects double registration
		respondError(c, http.StatusConflict, "already registered for this event")
		return
	}

	h.mailService.SendEventRegistrationEmail(user.Email, user.FirstName, event.Title, registration.ConfirmationCode)
	c.JSON(http.StatusCreated, gin.H{"registration": registration})
}

// Unregister withdraws the current member's registration.
func (h *EventHandler) Unregister(c *gin.Context) {
	user := middleware.CurrentUser(c)

	result := db.DB.
		Where("event_id = ? AND user_id = ? AND attended_at IS NULL", c.Param("id"), user.ID).
		Delete(&models.EventRegistration{})
	if result.Error != nil {
		handleWriteError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "no open registration for this event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration cancelled"})
}

type attendanceRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// MarkAttendance records a check-in, bumps the attendee's counters and
// credits contribution.
func (h *EventHandler) MarkAttendance(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var registration models.EventRegistration
	if err := db.DB.
		Where("event_id = ? AND user_id = ?", c.Param("id"), req.UserID).
		First(&registration).Error; err != nil {
		respondError(c, http.StatusNotFound, "registration not found")
		return
	}
	if registration.AttendedAt != nil {
		respondError(c, http.StatusBadRequest, "attendance already recorded")
		return
	}

	now := time.Now()
	if err := db.DB.Model(&registration).UpdateColumn("attended_at", now).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	if err := db.DB.Model(&models.User{}).Where("id = ?", req.UserID).
		UpdateColumn("stat_events_attended", gorm.Expr("stat_events_attended + 1")).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	services.AddContributionAsync(req.UserID, services.PointsEventAttended, services.ActionEventAttended)
	c.JSON(http.StatusOK, gin.H{"message": "attendance recorded"})
}

type feedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// SubmitFeedback stores a rating for an attended event.
func (h *EventHandler) SubmitFeedback(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	var registration models.EventRegistration
	if err := db.DB.
		Where("event_id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&registration).Error; err != nil {
		respondError(c, http.StatusNotFound, "registration not found")
		return
	}
	if registration.AttendedAt == nil {
		respondError(c, http.StatusBadRequest, "feedback requires recorded attendance")
		return
	}

	if err := db.DB.Model(&registration).Updates(map[string]interface{}{
		"feedback_rating":  req.Rating,
		"feedback_comment": req.Comment,
	}).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	services.AddContributionAsync(user.ID, services.PointsFeedbackGiven, services.ActionFeedbackGiven)
	c.JSON(http.StatusOK, gin.H{"message": "feedback submitted"})
}

// Upcoming lists the next events.
func (h *EventHandler) Upcoming(c *gin.Context) {
	limit := utils.StringToInt(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var events []models.Event
	if err := db.DB.Preload("Chapter").
		Where("starts_at > ?", time.Now()).
		Order("starts_at").
		Limit(limit).
		Find(&events).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ByChapter lists a chapter's events. Mounted under the chapter routes, so
// the id param is the chapter's.
func (h *EventHandler) ByChapter(c *gin.Context) {
	var events []models.Event
	if err := db.DB.
		Where("chapter_id = ?", c.Param("id")).
		Order("starts_at DESC").
		Find(&events).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// StatsOverview returns event totals, cached briefly.
func (h *EventHandler) StatsOverview(c *gin.Context) {
	cache := utils.GetCache()
	if cached := cache.Get("event_stats_overview"); cached != nil {
		c.JSON(http.StatusOK, cached.(gin.H))
		return
	}

	var total, upcoming, registrations, attended int64
	db.DB.Model(&models.Event{}).Count(&total)
	db.DB.Model(&models.Event{}).Where("starts_at > ?", time.Now()).Count(&upcoming)
	db.DB.Model(&models.EventRegistration{}).Count(&registrations)
	db.DB.Model(&models.EventRegistration{}).Where("attended_at IS NOT NULL").Count(&attended)

	stats := gin.H{
		"total":         total,
		"upcoming":      upcoming,
		"registrations": registrations,
		"attended":      attended,
	}
	cache.Set("event_stats_overview", stats, 5*time.Minute)
	c.JSON(http.StatusOK, stats)
}
