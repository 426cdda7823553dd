package client

import (
	"context"
	"fmt"
)

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Country   string `json:"country"`
	City      string `json:"city"`
}

type RegisterResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	User      User   `json:"user"`
}

type ProfileUpdate struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Avatar         string `json:"avatar"`
	Bio            string `json:"bio"`
	Country        string `json:"country"`
	City           string `json:"city"`
	Profession     string `json:"profession"`
	Institution    string `json:"institution"`
	Specialization string `json:"specialization"`
	LinkedIn       string `json:"linked_in"`
	Twitter        string `json:"twitter"`
}

type PreferencesUpdate struct {
	EmailNotifications   *bool   `json:"email_notifications,omitempty"`
	PushNotifications    *bool   `json:"push_notifications,omitempty"`
	DesktopNotifications *bool   `json:"desktop_notifications,omitempty"`
	TwoFactorAuth        *bool   `json:"two_factor_auth,omitempty"`
	Language             *string `json:"language,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.post(ctx, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the returned bearer token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.post(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.tokens.SetToken(out.Token)
	return &out, nil
}

// Logout discards the stored token. The server side is stateless.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/api/auth/logout", nil, nil)
	c.tokens.Clear()
	return err
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/api/auth/me", &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	return c.put(ctx, "/api/auth/me", update, nil)
}

func (c *Client) UpdatePreferences(ctx context.Context, update PreferencesUpdate) error {
	return c.put(ctx, "/api/auth/me/preferences", update, nil)
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.post(ctx, "/api/auth/change-password", map[string]string{
		"current_password": current,
		"new_password":     next,
	}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.post(ctx, "/api/auth/reset-password", map[string]string{
		"token":    token,
		"password": newPassword,
	}, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.post(ctx, "/api/auth/verify-email", map[string]string{"token": token}, nil)
}

func (c *Client) ResendVerification(ctx context.Context) error {
	return c.post(ctx, "/api/auth/resend-verification", nil, nil)
}

// GoogleLoginURL is the browser entry point for the OAuth flow; the token
// arrives on the frontend callback, not through this client.
func (c *Client) GoogleLoginURL() string {
	return fmt.Sprintf("%s/api/auth/google", c.baseURL)
}
