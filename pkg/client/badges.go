package client

import (
	"context"
	"fmt"
	"net/url"
)

type BadgeRequest struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	Icon                 string `json:"icon"`
	MinEventsAttended    int    `json:"min_events_attended"`
	MinContributionScore int    `json:"min_contribution_score"`
}

func (c *Client) ListBadges(ctx context.Context, category string) ([]Badge, error) {
	path := "/api/badges"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out struct {
		Badges []Badge `json:"badges"`
	}
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Badges, nil
}

func (c *Client) GetBadge(ctx context.Context, id uint) (*Badge, error) {
	var out struct {
		Badge Badge `json:"badge"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/badges/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.Badge, nil
}

func (c *Client) CreateBadge(ctx context.Context, req BadgeRequest) (*Badge, error) {
	var out struct {
		Badge Badge `json:"badge"`
	}
	if err := c.post(ctx, "/api/badges", req, &out); err != nil {
		return nil, err
	}
	return &out.Badge, nil
}

func (c *Client) UpdateBadge(ctx context.Context, id uint, req BadgeRequest) error {
	return c.put(ctx, fmt.Sprintf("/api/badges/%d", id), req, nil)
}

func (c *Client) DeleteBadge(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/badges/%d", id), nil)
}

func (c *Client) AwardBadge(ctx context.Context, userID, badgeID uint) (*UserBadge, error) {
	var out struct {
		Awarded UserBadge `json:"awarded"`
	}
	err := c.post(ctx, "/api/badges/award", map[string]uint{
		"user_id":  userID,
		"badge_id": badgeID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Awarded, nil
}

// BadgeEligibility lists criteria badges the user qualifies for but does
// not yet hold.
func (c *Client) BadgeEligibility(ctx context.Context, userID uint) ([]Badge, error) {
	var out struct {
		Eligible []Badge `json:"eligible"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/badges/eligibility/%d", userID), &out); err != nil {
		return nil, err
	}
	return out.Eligible, nil
}

func (c *Client) CheckBadgeEligibility(ctx context.Context, badgeID, userID uint) (bool, error) {
	var out struct {
		Eligible bool `json:"eligible"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/badges/%d/eligibility/%d", badgeID, userID), &out); err != nil {
		return false, err
	}
	return out.Eligible, nil
}

// AutoAwardBadges sweeps all members against badge criteria and returns how
// many awards were made.
func (c *Client) AutoAwardBadges(ctx context.Context) (int, error) {
	var out struct {
		Awarded int `json:"awarded"`
	}
	if err := c.post(ctx, "/api/badges/auto-award", nil, &out); err != nil {
		return 0, err
	}
	return out.Awarded, nil
}

func (c *Client) BadgeLeaderboard(ctx context.Context) ([]User, error) {
	var out struct {
		Leaderboard []User `json:"leaderboard"`
	}
	if err := c.get(ctx, "/api/badges/leaderboard", &out); err != nil {
		return nil, err
	}
	return out.Leaderboard, nil
}

func (c *Client) BadgeStats(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.get(ctx, "/api/badges/stats", &out); err != nil {
		return nil, err
	}
	return out, nil
}
