package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/templui/goalflow/internal/model"
)

func rangeQuery(from, to string) url.Values {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return q
}

// Summary fetches report totals for [from, to). Either bound may be empty.
func (c *Client) Summary(ctx context.Context, from, to string) (*model.Summary, error) {
	var resp response[model.Summary]
	err := c.do(ctx, http.MethodGet, "/api/reports/summary", rangeQuery(from, to), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) EmailSummary(ctx context.Context, from, to string) error {
	return c.do(ctx, http.MethodPost, "/api/reports/summary/email", rangeQuery(from, to), nil, nil)
}
