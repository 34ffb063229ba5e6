// Package posclient provides the HTTP client used by the kitchen board,
// the order tracker, and the notification watcher to talk to the backend
// API. It implements ordersync.OrderSource and ordersync.OrderWriter, so
// the polling engine never knows it is speaking HTTP.
package posclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/creamcroissant/foodpos/internal/cart"
	"github.com/creamcroissant/foodpos/internal/ordersync"
	"github.com/creamcroissant/foodpos/internal/repository"
)

// Client is an HTTP client for the backend API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client pointed at the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// orderPayload mirrors the order JSON served by the API. Timestamps are
// RFC 3339 on the wire and unix seconds in memory.
type orderPayload struct {
	ID          int64              `json:"id"`
	TableNumber int                `json:"table_number"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Items       []orderItemPayload `json:"items"`
}

type orderItemPayload struct {
	ID           int64  `json:"id"`
	MenuItem     int64  `json:"menu_item"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`
	Notes        string `json:"notes"`
}

type categoryPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type menuItemPayload struct {
	ID          int64               `json:"id"`
	Category    int64               `json:"category"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       int64               `json:"price"`
	IsAvailable bool                `json:"is_available"`
	ImageURL    string              `json:"image_url"`
	Options     []menuOptionPayload `json:"options"`
}

type menuOptionPayload struct {
	ID              int64  `json:"id"`
	GroupName       string `json:"group_name"`
	Name            string `json:"name"`
	AdditionalPrice int64  `json:"additional_price"`
	IsRequired      bool   `json:"is_required"`
}

type createOrderRequest struct {
	TableNumber int                      `json:"table_number"`
	Items       []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	MenuItem int64  `json:"menu_item"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (p *orderPayload) toOrder() (*repository.Order, error) {
	status, ok := repository.ParseOrderStatus(p.Status)
	if !ok {
		return nil, fmt.Errorf("order %d: unknown status %q", p.ID, p.Status)
	}
	order := &repository.Order{
		ID:          p.ID,
		TableNumber: p.TableNumber,
		Status:      status,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	}
	for _, item := range p.Items {
		order.Items = append(order.Items, &repository.OrderItem{
			ID:           item.ID,
			OrderID:      p.ID,
			MenuItemID:   item.MenuItem,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Notes:        item.Notes,
		})
	}
	return order, nil
}

// ListOrders fetches orders, optionally filtered by status. A malformed
// response body counts as a failed poll, not an empty one.
func (c *Client) ListOrders(ctx context.Context, filter ordersync.StatusFilter) ([]*repository.Order, error) {
	path := "/api/orders"
	if len(filter) > 0 {
		parts := make([]string, 0, len(filter))
		for _, s := range filter {
			parts = append(parts, string(s))
		}
		path += "?status=" + url.QueryEscape(strings.Join(parts, ","))
	}

	var payloads []orderPayload
	if err := c.get(ctx, path, &payloads); err != nil {
		return nil, err
	}

	orders := make([]*repository.Order, 0, len(payloads))
	for i := range payloads {
		order, err := payloads[i].toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// GetOrder fetches a single order by ID. A 404 maps to
// repository.ErrNotFound so the tracker can distinguish a vanished order
// from a transport failure.
func (c *Client) GetOrder(ctx context.Context, id int64) (*repository.Order, error) {
	var payload orderPayload
	if err := c.get(ctx, "/api/orders/"+strconv.FormatInt(id, 10), &payload); err != nil {
		return nil, err
	}
	return payload.toOrder()
}

// UpdateOrderStatus transitions an order and returns the updated order.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status repository.OrderStatus) (*repository.Order, error) {
	var payload orderPayload
	path := "/api/orders/" + strconv.FormatInt(id, 10) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, updateStatusRequest{Status: string(status)}, &payload); err != nil {
		return nil, err
	}
	return payload.toOrder()
}

// CreateOrder submits a cart's lines as a new order.
func (c *Client) CreateOrder(ctx context.Context, tableNumber int, lines []cart.Line) (*repository.Order, error) {
	req := createOrderRequest{TableNumber: tableNumber}
	for _, line := range lines {
		req.Items = append(req.Items, createOrderItemRequest{
			MenuItem: line.MenuItemID,
			Quantity: line.Quantity,
			Notes:    line.Notes(),
		})
	}

	var payload orderPayload
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &payload); err != nil {
		return nil, err
	}
	return payload.toOrder()
}

// Categories fetches the active menu categories.
func (c *Client) Categories(ctx context.Context) ([]*repository.Category, error) {
	var payloads []categoryPayload
	if err := c.get(ctx, "/api/categories", &payloads); err != nil {
		return nil, err
	}
	categories := make([]*repository.Category, 0, len(payloads))
	for _, p := range payloads {
		categories = append(categories, &repository.Category{ID: p.ID, Name: p.Name, IsActive: p.IsActive})
	}
	return categories, nil
}

// MenuItems fetches available menu items, optionally for one category.
func (c *Client) MenuItems(ctx context.Context, categoryID *int64) ([]*repository.MenuItem, error) {
	path := "/api/menu-items"
	if categoryID != nil {
		path += "?category=" + strconv.FormatInt(*categoryID, 10)
	}

	var payloads []menuItemPayload
	if err := c.get(ctx, path, &payloads); err != nil {
		return nil, err
	}

	items := make([]*repository.MenuItem, 0, len(payloads))
	for _, p := range payloads {
		item := &repository.MenuItem{
			ID:          p.ID,
			CategoryID:  p.Category,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			IsAvailable: p.IsAvailable,
			ImageURL:    p.ImageURL,
		}
		for _, opt := range p.Options {
			item.Options = append(item.Options, &repository.MenuItemOption{
				ID:              opt.ID,
				MenuItemID:      p.ID,
				GroupName:       opt.GroupName,
				Name:            opt.Name,
				AdditionalPrice: opt.AdditionalPrice,
				IsRequired:      opt.IsRequired,
			})
		}
		items = append(items, item)
	}
	return items, nil
}

// WaitReady blocks until the backend answers its health check, or the
// context expires. Retries use exponential backoff; once a client is
// running, the poll loops themselves never back off.
func (c *Client) WaitReady(ctx context.Context) error {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.Retry(func() error {
		return c.health(ctx)
	}, policy)
}

func (c *Client) health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return repository.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

var (
	_ ordersync.OrderSource = (*Client)(nil)
	_ ordersync.OrderWriter = (*Client)(nil)
	_ cart.OrderCreator     = (*Client)(nil)
)
