package client

import (
	"context"
	"fmt"
	"net/url"
)

type ChapterRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Country     string `json:"country"`
	City        string `json:"city"`
}

func (c *Client) ListChapters(ctx context.Context) ([]Chapter, error) {
	var out struct {
		Chapters []Chapter `json:"chapters"`
	}
	if err := c.get(ctx, "/api/chapters", &out); err != nil {
		return nil, err
	}
	return out.Chapters, nil
}

type ChapterDetail struct {
	Chapter         Chapter `json:"chapter"`
	DescriptionHTML string  `json:"description_html"`
	MemberCount     int64   `json:"member_count"`
}

func (c *Client) GetChapter(ctx context.Context, id uint) (*ChapterDetail, error) {
	var out ChapterDetail
	if err := c.get(ctx, fmt.Sprintf("/api/chapters/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateChapter(ctx context.Context, req ChapterRequest) (*Chapter, error) {
	var out struct {
		Chapter Chapter `json:"chapter"`
	}
	if err := c.post(ctx, "/api/chapters", req, &out); err != nil {
		return nil, err
	}
	return &out.Chapter, nil
}

func (c *Client) UpdateChapter(ctx context.Context, id uint, req ChapterRequest) error {
	return c.put(ctx, fmt.Sprintf("/api/chapters/%d", id), req, nil)
}

func (c *Client) DeleteChapter(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/chapters/%d", id), nil)
}

func (c *Client) ChaptersByCountry(ctx context.Context, country string) ([]Chapter, error) {
	var out struct {
		Chapters []Chapter `json:"chapters"`
	}
	path := "/api/chapters/country/" + url.PathEscape(country)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Chapters, nil
}

func (c *Client) PendingChapters(ctx context.Context) ([]Chapter, error) {
	var out struct {
		Chapters []Chapter `json:"chapters"`
	}
	if err := c.get(ctx, "/api/chapters/pending", &out); err != nil {
		return nil, err
	}
	return out.Chapters, nil
}

func (c *Client) ApproveChapter(ctx context.Context, id uint) error {
	return c.post(ctx, fmt.Sprintf("/api/chapters/%d/approve", id), nil, nil)
}

func (c *Client) AddChapterLeader(ctx context.Context, chapterID, userID uint) error {
	return c.post(ctx, fmt.Sprintf("/api/chapters/%d/leaders", chapterID),
		map[string]uint{"user_id": userID}, nil)
}

func (c *Client) RemoveChapterLeader(ctx context.Context, chapterID, userID uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/chapters/%d/leaders/%d", chapterID, userID), nil)
}

func (c *Client) ChapterStats(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.get(ctx, "/api/chapters/stats", &out); err != nil {
		return nil, err
	}
	return out, nil
}
