package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type EventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ChapterID   *uint      `json:"chapter_id,omitempty"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Capacity    int        `json:"capacity"`
}

type EventFilter struct {
	ChapterID uint
	Upcoming  bool
}

func (f EventFilter) query() string {
	q := url.Values{}
	if f.ChapterID != 0 {
		q.Set("chapter_id", strconv.FormatUint(uint64(f.ChapterID), 10))
	}
	if f.Upcoming {
		q.Set("upcoming", "true")
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) ListEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	var out struct {
		Events []Event `json:"events"`
	}
	if err := c.get(ctx, "/api/events"+filter.query(), &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *Client) UpcomingEvents(ctx context.Context, limit int) ([]Event, error) {
	path := "/api/events/upcoming"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out struct {
		Events []Event `json:"events"`
	}
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

type EventDetail struct {
	Event           Event  `json:"event"`
	DescriptionHTML string `json:"description_html"`
	Registered      int64  `json:"registered"`
}

func (c *Client) GetEvent(ctx context.Context, id uint) (*EventDetail, error) {
	var out EventDetail
	if err := c.get(ctx, fmt.Sprintf("/api/events/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEvent(ctx context.Context, req EventRequest) (*Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	if err := c.post(ctx, "/api/events", req, &out); err != nil {
		return nil, err
	}
	return &out.Event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id uint, req EventRequest) error {
	return c.put(ctx, fmt.Sprintf("/api/events/%d", id), req, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/events/%d", id), nil)
}

// RegisterForEvent signs the authenticated member up and returns the
// registration with its confirmation code.
func (c *Client) RegisterForEvent(ctx context.Context, eventID uint) (*EventRegistration, error) {
	var out struct {
		Registration EventRegistration `json:"registration"`
	}
	if err := c.post(ctx, fmt.Sprintf("/api/events/%d/register", eventID), nil, &out); err != nil {
		return nil, err
	}
	return &out.Registration, nil
}

func (c *Client) UnregisterFromEvent(ctx context.Context, eventID uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/events/%d/register", eventID), nil)
}

func (c *Client) MarkAttendance(ctx context.Context, eventID, userID uint) error {
	return c.post(ctx, fmt.Sprintf("/api/events/%d/attendance", eventID),
		map[string]uint{"user_id": userID}, nil)
}

func (c *Client) SubmitEventFeedback(ctx context.Context, eventID uint, rating int, comment string) error {
	return c.post(ctx, fmt.Sprintf("/api/events/%d/feedback", eventID), map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	}, nil)
}

func (c *Client) EventsByChapter(ctx context.Context, chapterID uint) ([]Event, error) {
	var out struct {
		Events []Event `json:"events"`
	}
	if err := c.get(ctx, fmt.Sprintf("/api/chapters/%d/events", chapterID), &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *Client) EventStats(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.get(ctx, "/api/events/stats", &out); err != nil {
		return nil, err
	}
	return out, nil
}
