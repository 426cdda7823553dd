package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"amthub/internal/db"
	"amthub/internal/middleware"
	"amthub/internal/models"
	"amthub/internal/services"
	"amthub/internal/utils"
)

const sessionTokenTTL = 24 * time.Hour

type AuthHandler struct {
	mailService *services.MailService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		mailService: services.NewMailService(),
	}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Country   string `json:"country" validate:"required"`
	City      string `json:"city" validate:"required"`
}

// Register creates a local account and emails a verification link.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// validate -> rehash-if-changed -> recompute-derived -> persist
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidEmail(email) {
		handleWriteError(c, models.NewValidationError("email", "must be a valid email address"))
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Avatar:       utils.GetRandomEmoji(),
		Country:      req.Country,
		City:         req.City,
		Role:         models.RoleMember,
		AuthProvider: models.ProviderLocal,
		IsActive:     true,
		JoinedAt:     time.Now(),
		LastActive:   time.Now(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		handleWriteError(c, err)
		return
	}

	token, err := user.CreateEmailVerificationToken()
	if err != nil {
		handleWriteError(c, err)
		return
	}

	user.RecomputeStats()
	if err := db.DB.Create(&user).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	h.mailService.SendVerificationEmail(user.Email, user.FirstName, token)

	c.JSON(http.StatusCreated, gin.H{
		"id":      user.ID,
		"message": "registration successful, please check your email",
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a local account and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	err := db.DB.Where("email = ?", utils.NormalizeEmail(req.Email)).First(&user).Error
	if err != nil || !user.VerifyPassword(req.Password) {
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if !user.IsActive {
		respondError(c, http.StatusForbidden, "account is deactivated")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, sessionTokenTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not create token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(sessionTokenTTL.Seconds()),
		"user":       user,
	})
}

// Logout is stateless on the server; the client discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated account with its chapter and badge ledger.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var full models.User
	if err := db.DB.Preload("Chapter").Preload("Badges.Badge").First(&full, user.ID).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": full})
}

type profileRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=50"`
	LastName       string `json:"last_name" validate:"required,max=50"`
	Avatar         string `json:"avatar"`
	Bio            string `json:"bio" validate:"max=500"`
	Country        string `json:"country" validate:"required"`
	City           string `json:"city" validate:"required"`
	Profession     string `json:"profession" validate:"max=100"`
	Institution    string `json:"institution" validate:"max=100"`
	Specialization string `json:"specialization" validate:"max=100"`
	LinkedIn       string `json:"linked_in"`
	Twitter        string `json:"twitter"`
}

// UpdateProfile updates identity and profile fields. Email and credentials
// have their own flows.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	updates := map[string]interface{}{
		"first_name":     req.FirstName,
		"last_name":      req.LastName,
		"avatar":         req.Avatar,
		"bio":            req.Bio,
		"country":        req.Country,
		"city":           req.City,
		"profession":     req.Profession,
		"institution":    req.Institution,
		"specialization": req.Specialization,
		"linked_in":      req.LinkedIn,
		"twitter":        req.Twitter,
	}
	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type preferencesRequest struct {
	EmailNotifications   *bool   `json:"email_notifications"`
	PushNotifications    *bool   `json:"push_notifications"`
	DesktopNotifications *bool   `json:"desktop_notifications"`
	TwoFactorAuth        *bool   `json:"two_factor_auth"`
	Language             *string `json:"language" validate:"omitempty,max=30"`
}

// UpdatePreferences applies partial preference updates.
func (h *AuthHandler) UpdatePreferences(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.EmailNotifications != nil {
		updates["pref_email_notifications"] = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		updates["pref_push_notifications"] = *req.PushNotifications
	}
	if req.DesktopNotifications != nil {
		updates["pref_desktop_notifications"] = *req.DesktopNotifications
	}
	if req.TwoFactorAuth != nil {
		updates["pref_two_factor_auth"] = *req.TwoFactorAuth
	}
	if req.Language != nil {
		updates["pref_language"] = *req.Language
	}
	if len(updates) > 0 {
		if err := db.DB.Model(user).Updates(updates).Error; err != nil {
			handleWriteError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "preferences updated"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// ChangePassword re-hashes the credential after verifying the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if !user.VerifyPassword(req.CurrentPassword) {
		respondError(c, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		handleWriteError(c, err)
		return
	}
	if err := db.DB.Model(user).UpdateColumn("password", user.Password).Error; err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ForgotPassword issues a reset token. The response never reveals whether the
// address is registered; the token travels only inside the email.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	generic := gin.H{"message": "if that email is registered, a reset link has been sent"}

	var user models.User
	if err := db.DB.Where("email = ? AND is_active = ?", utils.NormalizeEmail(req.Email), true).
		First(&user).Error; err != nil {
		c.JSON(http.StatusOK, generic)
		return
	}

	token, err := user.CreatePasswordResetToken()
	if err != nil {
		handleWriteError(c, err)
		return
	}
	// Last write wins: a concurrent reissue simply invalidates this token.
	if err := db.DB.Model(&user).UpdateColumns(map[string]interface{}{
		"password_reset_token":   user.PasswordResetToken,
		"password_reset_expires": user.PasswordResetExpires,
	}).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	h.mailService.SendPasswordResetEmail(user.Email, user.FirstName, token)
	c.JSON(http.StatusOK, generic)
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResetPassword consumes a reset token and installs the new credential.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.ValidateStruct(&req); err != nil {
		handleWriteError(c, err)
		return
	}

	user, err := h.resetPassword(req.Token, req.Password)
	if err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset successful", "id": user.ID})
}

// resetPassword holds the shared consume-then-rehash path used by the JSON
// endpoint and the landing-page form.
func (h *AuthHandler) resetPassword(rawToken, newPassword string) (*models.User, error) {
	var user models.User
	err := db.DB.Where("password_reset_token = ?", utils.HashToken(rawToken)).First(&user).Error
	if err != nil {
		// Lookup is by digest, so a miss means wrong or already-consumed token.
		return nil, models.ErrInvalidOrExpiredToken
	}

	if err := user.ConsumePasswordResetToken(rawToken); err != nil {
		return nil, err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return nil, err
	}

	err = db.DB.Model(&user).UpdateColumns(map[string]interface{}{
		"password":               user.Password,
		"password_reset_token":   "",
		"password_reset_expires": nil,
	}).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyEmail consumes a verification token and marks the address verified.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := h.verifyEmail(req.Token); err != nil {
		handleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

func (h *AuthHandler) verifyEmail(rawToken string) (*models.User, error) {
	var user models.User
	err := db.DB.Where("email_verification_token = ?", utils.HashToken(rawToken)).First(&user).Error
	if err != nil {
		return nil, models.ErrInvalidOrExpiredToken
	}

	if err := user.ConsumeEmailVerificationToken(rawToken); err != nil {
		return nil, err
	}

	err = db.DB.Model(&user).UpdateColumns(map[string]interface{}{
		"is_email_verified":          true,
		"email_verification_token":   "",
		"email_verification_expires": nil,
	}).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ResendVerification reissues the verification token, invalidating the
// previous one.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if user.IsEmailVerified {
		respondError(c, http.StatusBadRequest, "email is already verified")
		return
	}

	token, err := user.CreateEmailVerificationToken()
	if err != nil {
		handleWriteError(c, err)
		return
	}
	if err := db.DB.Model(user).UpdateColumns(map[string]interface{}{
		"email_verification_token":   user.EmailVerificationToken,
		"email_verification_expires": user.EmailVerificationExpires,
	}).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	h.mailService.SendVerificationEmail(user.Email, user.FirstName, token)
	c.JSON(http.StatusOK, gin.H{"message": "verification email sent"})
}

// VerifyEmailPage is the landing page behind the emailed verification link.
func (h *AuthHandler) VerifyEmailPage(c *gin.Context) {
	if _, err := h.verifyEmail(c.Param("token")); err != nil {
		Render(c, http.StatusBadRequest, "auth/verified.html", gin.H{"Error": "This verification link is invalid or has expired."})
		return
	}
	Render(c, http.StatusOK, "auth/verified.html", gin.H{"Success": "Your email has been verified. You can close this page and sign in."})
}

// ShowResetPassword renders the reset form behind the emailed link.
func (h *AuthHandler) ShowResetPassword(c *gin.Context) {
	Render(c, http.StatusOK, "auth/reset.html", gin.H{"Token": c.Param("token")})
}

// ResetPasswordForm handles the landing-page form submission.
func (h *AuthHandler) ResetPasswordForm(c *gin.Context) {
	password := c.PostForm("password")
	if _, err := h.resetPassword(c.Param("token"), password); err != nil {
		if models.IsValidationError(err) {
			Render(c, http.StatusBadRequest, "auth/reset.html", gin.H{
				"Token": c.Param("token"),
				"Error": "Password must be at least 6 characters.",
			})
			return
		}
		Render(c, http.StatusBadRequest, "auth/reset.html", gin.H{"Error": "This reset link is invalid or has expired."})
		return
	}
	Render(c, http.StatusOK, "auth/reset.html", gin.H{"Success": "Your password has been reset. You can now sign in."})
}
