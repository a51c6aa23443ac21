// Package client is the dashboard side of the system: a thin wrapper over
// the HTTP API plus the session store and the polling loop the role views
// share.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"edrina-resto/apperrors"
	"edrina-resto/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// do runs one API call. Network failures come back as Transport errors so
// the views can treat them as retryable; API errors are mapped back into
// the shared taxonomy from the response status.
func (c *Client) do(method, path, token string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Transport(method+" "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		msg := resp.Status
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return apperrors.FromStatus(resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Transport(method+" "+path, err)
	}
	return nil
}

type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

func (c *Client) Login(username, password string) (LoginResult, error) {
	var result LoginResult
	err := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	return result, err
}

func (c *Client) Me(token string) (models.User, error) {
	var user models.User
	err := c.do(http.MethodGet, "/api/auth/me", token, nil, &user)
	return user, err
}

func (c *Client) InitSystem() error {
	return c.do(http.MethodPost, "/api/init", "", nil, nil)
}

func (c *Client) ListOrders(token string) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(http.MethodGet, "/api/orders", token, nil, &orders)
	return orders, err
}

func (c *Client) CreateOrder(token string, tableNumber int, items []models.OrderItem) (models.Order, error) {
	var order models.Order
	err := c.do(http.MethodPost, "/api/orders", token, map[string]interface{}{
		"table_number": tableNumber,
		"items":        items,
	}, &order)
	return order, err
}

func (c *Client) UpdateOrderItems(token, orderID string, items []models.OrderItem) (models.Order, error) {
	var order models.Order
	err := c.do(http.MethodPut, "/api/orders/"+orderID, token, map[string]interface{}{
		"items": items,
	}, &order)
	return order, err
}

func (c *Client) UpdateOrderStatus(token, orderID string, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	err := c.do(http.MethodPut, "/api/orders/"+orderID, token, map[string]interface{}{
		"status": status,
	}, &order)
	return order, err
}

func (c *Client) ListMenu(token string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.do(http.MethodGet, "/api/menu", token, nil, &items)
	return items, err
}

// FormatAmount renders a money value the way every view displays it.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f TND", v)
}
