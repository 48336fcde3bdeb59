// Package ecoloop is the Go client for the recycling-logistics API. It
// carries an explicit session, maps HTTP responses onto a typed error
// taxonomy, and backs the order lifecycle manager used by the collector
// and back-office frontends.
package ecoloop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Order is the order read model as the API renders it.
type Order struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	MaterialID        string     `json:"material_id"`
	MaterialName      string     `json:"material_name"`
	CollectorID       *string    `json:"collector_id,omitempty"`
	Address           string     `json:"address"`
	Category          string     `json:"category"`
	ContactPhone      string     `json:"contact_phone,omitempty"`
	UnitPriceSnapshot float64    `json:"unit_price_snapshot"`
	Status            string     `json:"status"`
	ActualWeight      *float64   `json:"actual_weight,omitempty"`
	ImpurityPercent   *float64   `json:"impurity_percent,omitempty"`
	Bonus             *float64   `json:"bonus,omitempty"`
	Amount            *float64   `json:"amount,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// TimelineStep is one milestone on an order's track.
type TimelineStep struct {
	Label string     `json:"label"`
	Time  *time.Time `json:"time"`
	Done  bool       `json:"done"`
}

// Withdrawal is the payout read model.
type Withdrawal struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	CollectorID  *string   `json:"collector_id,omitempty"`
	OrderID      *string   `json:"order_id,omitempty"`
	Amount       float64   `json:"amount"`
	Channel      string    `json:"channel"`
	Status       string    `json:"status"`
	RejectReason string    `json:"reject_reason,omitempty"`
	RequestedAt  time.Time `json:"requested_at"`
}

// Material is one catalog entry.
type Material struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	CurrentPrice    float64   `json:"current_price"`
	MarketPrice     float64   `json:"market_price"`
	Trend           string    `json:"trend"`
	Unit            string    `json:"unit"`
	InventoryWeight float64   `json:"inventory_weight"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Notification is one inbox entry.
type Notification struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	Kind              string    `json:"kind"`
	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string   `json:"related_entity_id,omitempty"`
	Read              bool      `json:"read"`
	CreatedAt         time.Time `json:"created_at"`
}

// Stats is the back-office dashboard read model.
type Stats struct {
	Revenue            float64 `json:"revenue"`
	Weight             float64 `json:"weight"`
	Window             string  `json:"window"`
	PendingWithdrawals int64   `json:"pending_withdrawals"`
	TotalAccounts      int64   `json:"total_accounts"`
	TotalCollectors    int64   `json:"total_collectors"`
	TotalOrders        int64   `json:"total_orders"`
	CompletedOrders    int64   `json:"completed_orders"`
	PendingOrders      int64   `json:"pending_orders"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalWeight        float64 `json:"total_weight"`
}

// ListFilter narrows an order list fetch.
type ListFilter struct {
	Status string
	// View is "open" for the claimable pool, "assigned" for the
	// collector's bound orders, empty for the caller's own bookings.
	View string
}

type apiErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client talks to the API with one session's credentials.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
}

// NewClient creates a client for the given base URL and session. A nil
// httpClient gets a default with a 10 second timeout.
func NewClient(baseURL string, session *Session, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if session == nil {
		return nil, errors.New("session is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, session: session, http: httpClient}, nil
}

// Orders lists orders through the caller's viewpoint.
func (c *Client) Orders(ctx context.Context, filter ListFilter) ([]Order, error) {
	params := url.Values{}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.View != "" {
		params.Set("view", filter.View)
	}
	path := "/api/v1/orders"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var orders []Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Assign binds a collector to a pending order (dispatcher path).
func (c *Client) Assign(ctx context.Context, orderID, collectorID string) error {
	body := map[string]string{"collector_id": collectorID}
	return c.do(ctx, http.MethodPut, "/api/v1/orders/"+orderID+"/assign", body, nil)
}

// Claim requests self-assignment of a pending order. A lost race surfaces
// as ErrConflict.
func (c *Client) Claim(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, "/api/v1/orders/"+orderID+"/claim", nil, nil)
}

// Complete settles a scheduled order with the weighed result.
func (c *Client) Complete(ctx context.Context, orderID string, weight, impurityPercent float64) error {
	body := map[string]float64{"actual_weight": weight, "impurity_percent": impurityPercent}
	return c.do(ctx, http.MethodPut, "/api/v1/orders/"+orderID+"/complete", body, nil)
}

// Cancel cancels the caller's pending order.
func (c *Client) Cancel(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/orders/"+orderID, nil, nil)
}

// Timeline fetches an order's milestone track.
func (c *Client) Timeline(ctx context.Context, orderID string) ([]TimelineStep, error) {
	var steps []TimelineStep
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/"+orderID+"/timeline", nil, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// Withdrawals lists payout requests visible to the caller.
func (c *Client) Withdrawals(ctx context.Context, status string) ([]Withdrawal, error) {
	path := "/api/v1/withdrawals"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var withdrawals []Withdrawal
	if err := c.do(ctx, http.MethodGet, path, nil, &withdrawals); err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// Materials lists the catalog, optionally narrowed to a category.
func (c *Client) Materials(ctx context.Context, category string) ([]Material, error) {
	path := "/api/v1/materials"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var materials []Material
	if err := c.do(ctx, http.MethodGet, path, nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// Notifications lists the caller's inbox.
func (c *Client) Notifications(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	path := "/api/v1/notifications"
	if unreadOnly {
		path += "?unread=true"
	}
	var notifications []Notification
	if err := c.do(ctx, http.MethodGet, path, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Stats fetches the back-office dashboard numbers (admin only).
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/stats", nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// do runs one request with the session token attached and maps the outcome
// onto the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.session.Token()
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, token, body, out)
}

// doPublic issues a request without a bearer token. Config blobs render the
// pre-login screens, so they cannot depend on a session.
func (c *Client) doPublic(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, "", body, out)
}

func (c *Client) send(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("marshal request: %w", marshalErr)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapStatus(resp)
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) mapStatus(resp *http.Response) error {
	var body apiErrorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.session.Invalidate()
		return newAPIError(resp.StatusCode, body.Message, ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		return newAPIError(resp.StatusCode, body.Message, ErrForbidden)
	case resp.StatusCode == http.StatusNotFound:
		return newAPIError(resp.StatusCode, body.Message, ErrNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		return newAPIError(resp.StatusCode, body.Message, ErrServer)
	default:
		// Remaining 4xx are business-rule rejections, claim losses included.
		return newAPIError(resp.StatusCode, body.Message, ErrConflict)
	}
}

func classifyTransport(err error) error {
	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
	return &TransportError{Timeout: timeout, Err: err}
}
