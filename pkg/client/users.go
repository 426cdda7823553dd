package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type UserFilter struct {
	Role      string
	Country   string
	ChapterID uint
	Page      int
	Limit     int
}

func (f UserFilter) query() string {
	q := url.Values{}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.Country != "" {
		q.Set("country", f.Country)
	}
	if f.ChapterID != 0 {
		q.Set("chapter_id", strconv.FormatUint(uint64(f.ChapterID), 10))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

type UserList struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

func (c *Client) ListUsers(ctx context.Context, filter UserFilter) (*UserList, error) {
	var out UserList
	if err := c.get(ctx, "/api/users"+filter.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id uint) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

type AdminUserUpdate struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, id uint, update AdminUserUpdate) error {
	return c.put(ctx, fmt.Sprintf("/api/users/%d", id), update, nil)
}

// DeactivateUser soft-deletes the account.
func (c *Client) DeactivateUser(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/users/%d", id), nil)
}

func (c *Client) UsersByChapter(ctx context.Context, chapterID uint) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/users/chapter/%d", chapterID), &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) Leaders(ctx context.Context) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.get(ctx, "/api/users/leaders", &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) UserStats(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.get(ctx, "/api/users/stats", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) JoinChapter(ctx context.Context, userID, chapterID uint) error {
	return c.post(ctx, fmt.Sprintf("/api/users/%d/chapter", userID),
		map[string]uint{"chapter_id": chapterID}, nil)
}

func (c *Client) LeaveChapter(ctx context.Context, userID uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/users/%d/chapter", userID), nil)
}

func (c *Client) UserBadges(ctx context.Context, userID uint) ([]UserBadge, error) {
	var out struct {
		Badges []UserBadge `json:"badges"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/users/%d/badges", userID), &out); err != nil {
		return nil, err
	}
	return out.Badges, nil
}
