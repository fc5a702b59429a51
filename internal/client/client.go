// Package client talks to the food-court backend over HTTP.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/erazemk/foodcourt/internal/model"
)

// Backend paths.
const (
	PathAddFood = "/api/food/add"
	PathLogin   = "/api/user/login"
)

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "token"

// DefaultTimeout applies when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// StatusError is returned when the backend answers outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// ErrNoImage is returned by AddFood when the payload has no image.
var ErrNoImage = errors.New("payload has no image")

// Client is a backend API client.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*resty.Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

// WithDebug turns on request/response dumps.
func WithDebug(on bool) Option {
	return func(c *resty.Client) { c.SetDebug(on) }
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", "foodcourt-admin/1.0")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

// Payload is the multipart body of an add-food request.
type Payload struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       *model.Image
}

// AddFood uploads a new menu item as multipart/form-data. A 2xx answer
// is decoded into the reply regardless of its success flag; anything
// else is a *StatusError.
func (c *Client) AddFood(ctx context.Context, token string, p Payload) (*model.Reply, error) {
	if p.Image == nil {
		return nil, ErrNoImage
	}

	var reply model.Reply
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(TokenHeader, token).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetMultipartFormData(map[string]string{
			"name":        p.Name,
			"description": p.Description,
			"price":       model.FormatPrice(p.Price),
			"category":    p.Category,
		}).
		SetMultipartField("image", p.Image.Filename, p.Image.MIME, bytes.NewReader(p.Image.Data)).
		ForceContentType("application/json").
		SetResult(&reply).
		Post(PathAddFood)
	if err != nil {
		return nil, fmt.Errorf("posting food: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return &reply, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginReply, error) {
	var reply model.LoginReply
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{Email: email, Password: password}).
		ForceContentType("application/json").
		SetResult(&reply).
		Post(PathLogin)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return &reply, nil
}
