package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/templui/goalflow/internal/kanban"
	"github.com/templui/goalflow/internal/model"
)

var _ kanban.Updater = (*Client)(nil)

func weekQuery(weekKey string) url.Values {
	if weekKey == "" {
		return nil
	}
	return url.Values{"weekKey": {weekKey}}
}

// Goals lists the goals of one week, or of every week when weekKey is empty.
func (c *Client) Goals(ctx context.Context, weekKey string) ([]model.Goal, error) {
	var resp response[[]model.Goal]
	err := c.do(ctx, http.MethodGet, "/api/goals", weekQuery(weekKey), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	WeekKey     string `json:"weekKey"`
	DueDate     string `json:"dueDate,omitempty"`
}

func (c *Client) CreateGoal(ctx context.Context, draft model.GoalDraft) (*model.Goal, error) {
	req := createGoalRequest{
		Title:       draft.Title,
		Description: draft.Description,
		WeekKey:     draft.WeekKey,
	}
	if draft.DueDate != nil {
		req.DueDate = draft.DueDate.UTC().Format(time.RFC3339)
	}

	var resp response[model.Goal]
	err := c.do(ctx, http.MethodPost, "/api/goals", nil, req, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateGoal sends only the fields set in patch. ClearDueDate is sent as
// dueDate null.
func (c *Client) UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) error {
	body := map[string]any{}
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.Description != nil {
		body["description"] = *patch.Description
	}
	if patch.Status != nil {
		body["status"] = *patch.Status
	}
	if patch.Order != nil {
		body["order"] = *patch.Order
	}
	switch {
	case patch.ClearDueDate:
		body["dueDate"] = nil
	case patch.DueDate != nil:
		body["dueDate"] = patch.DueDate.UTC().Format(time.RFC3339)
	}

	return c.do(ctx, http.MethodPatch, "/api/goals/"+url.PathEscape(id), nil, body, nil)
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/goals/"+url.PathEscape(id), nil, nil, nil)
}

type moveGoalRequest struct {
	OverID string           `json:"overId,omitempty"`
	Status model.GoalStatus `json:"status,omitempty"`
}

// MoveGoal asks the server to drop the goal on target in one transaction
// and returns the resulting week.
func (c *Client) MoveGoal(ctx context.Context, id string, target kanban.Target) ([]model.Goal, error) {
	var resp response[[]model.Goal]
	err := c.do(ctx, http.MethodPost, "/api/goals/"+url.PathEscape(id)+"/move", nil,
		moveGoalRequest{OverID: target.GoalID, Status: target.Status}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) ExportWeek(ctx context.Context, weekKey string) (*model.WeekExport, error) {
	var export model.WeekExport
	err := c.do(ctx, http.MethodGet, "/api/goals/export", weekQuery(weekKey), nil, &export)
	if err != nil {
		return nil, err
	}
	return &export, nil
}

// ArchiveWeek stores the week export server side and returns a temporary
// download URL.
func (c *Client) ArchiveWeek(ctx context.Context, weekKey string) (string, error) {
	var resp response[any]
	err := c.do(ctx, http.MethodPost, "/api/goals/export", weekQuery(weekKey), nil, &resp)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}
