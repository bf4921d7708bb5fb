package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"lead_crm_client/internal/domain/today"
)

// TodayAPI is the accessor for the GET /tasks/today aggregate.
type TodayAPI struct {
	client *Client
}

func NewTodayAPI(c *Client) *TodayAPI {
	return &TodayAPI{client: c}
}

func (a *TodayAPI) Get(ctx context.Context, q today.Query) (*today.View, error) {
	view := &today.View{}
	if err := a.client.do(ctx, http.MethodGet, "/tasks/today", "todayTasks", q.Values(), nil, view); err != nil {
		return nil, fmt.Errorf("error fetching today's task queue: %w", err)
	}
	return view, nil
}
