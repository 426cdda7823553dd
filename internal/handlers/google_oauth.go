package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"amthub/internal/db"
	"amthub/internal/middleware"
	"amthub/internal/models"
	"amthub/internal/utils"
)

var googleOauthConfig *oauth2.Config

// InitGoogleOAuth configures the Google login flow.
func InitGoogleOAuth() {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}

	googleOauthConfig = &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  siteURL + "/api/auth/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleUserInfo is the profile returned by the userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func frontendURL() string {
	u := os.Getenv("FRONTEND_URL")
	if u == "" {
		u = "http://localhost:5173"
	}
	return u
}

// GoogleLogin starts the OAuth flow, stashing the state in the session.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not generate state token")
		return
	}

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Save()

	c.Redirect(http.StatusTemporaryRedirect, googleOauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// GoogleCallback completes the flow: verifies state, fetches the profile,
// finds or creates the account and hands a bearer token to the frontend.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState := session.Get("oauth_state")

	if savedState == nil || c.Query("state") != savedState.(string) {
		respondError(c, http.StatusBadRequest, "invalid oauth state")
		return
	}
	session.Delete("oauth_state")
	session.Save()

	code := c.Query("code")
	if code == "" {
		respondError(c, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not exchange authorization code")
		return
	}

	userInfo, err := h.getGoogleUserInfo(token.AccessToken)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch user info")
		return
	}
	if !userInfo.VerifiedEmail {
		respondError(c, http.StatusBadRequest, "google email is not verified")
		return
	}

	email := utils.NormalizeEmail(userInfo.Email)

	var user models.User
	err = db.DB.Where("google_id = ?", userInfo.ID).Or("email = ?", email).First(&user).Error
	if err != nil {
		// First login: register a google-provider account without a password.
		user = models.User{
			FirstName:       firstNonEmpty(userInfo.GivenName, "Member"),
			LastName:        firstNonEmpty(userInfo.FamilyName, "-"),
			Email:           email,
			Avatar:          utils.GetRandomEmoji(),
			Role:            models.RoleMember,
			AuthProvider:    models.ProviderGoogle,
			GoogleID:        userInfo.ID,
			IsEmailVerified: true,
			IsActive:        true,
			JoinedAt:        time.Now(),
			LastActive:      time.Now(),
		}
		if err := db.DB.Create(&user).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "could not create account")
			return
		}
	} else {
		if user.GoogleID == "" {
			db.DB.Model(&user).Updates(map[string]interface{}{
				"google_id":         userInfo.ID,
				"is_email_verified": true,
			})
		}
		if !user.IsActive {
			respondError(c, http.StatusForbidden, "account is deactivated")
			return
		}
	}

	bearer, err := middleware.GenerateToken(user.ID, user.Email, user.Role, sessionTokenTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not create token")
		return
	}

	c.Redirect(http.StatusFound, frontendURL()+"/auth/callback?token="+url.QueryEscape(bearer))
}

func (h *AuthHandler) getGoogleUserInfo(accessToken string) (*GoogleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + url.QueryEscape(accessToken))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo GoogleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}

	return &userInfo, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
