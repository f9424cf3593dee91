package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

var (
	ErrPeerUnavailable = errs.New("peer hotel service unavailable")
	ErrPeerNotFound    = errs.New("peer hotel service returned not found")
	ErrPeerBadRequest  = errs.New("peer hotel service rejected the request")
)

// Client talks to the peer hotel service. Idempotent GETs are retried with
// exponential backoff; CreateUser is a POST without an idempotency key, so it
// is sent exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxElapsed time.Duration
}

func NewClient(cfg config.PeerConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		maxElapsed: cfg.RetryMaxElapse,
	}
}

type RoomDTO struct {
	Number        string `json:"number"`
	RoomType      string `json:"type"`
	Capacity      int    `json:"capacity"`
	PricePerNight string `json:"pricePerNight"`
	IsAvailable   bool   `json:"isAvailable"`
}

type ServiceDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PricePerDay string `json:"price"`
}

type UserDTO struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (c *Client) GetAllRooms(ctx context.Context) ([]RoomDTO, error) {
	var rooms []RoomDTO
	if err := c.getWithRetry(ctx, "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) GetRoomByNumber(ctx context.Context, number string) (*RoomDTO, error) {
	var room RoomDTO
	if err := c.getWithRetry(ctx, "/rooms/"+url.PathEscape(number), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) GetFreeRoomsBetween(ctx context.Context, checkIn, checkOut time.Time) ([]RoomDTO, error) {
	params := url.Values{}
	params.Set("checkin", checkIn.Format("2006-01-02"))
	params.Set("checkOut", checkOut.Format("2006-01-02"))

	var rooms []RoomDTO
	if err := c.getWithRetry(ctx, "/bookings/date", params, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) ListServices(ctx context.Context) ([]ServiceDTO, error) {
	var services []ServiceDTO
	if err := c.getWithRetry(ctx, "/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) CreateUser(ctx context.Context, user UserDTO) (*UserDTO, error) {
	body, err := json.Marshal(user)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode user payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build create user request")
	}
	req.Header.Set("Content-Type", "application/json")

	var created UserDTO
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) getWithRetry(ctx context.Context, path string, params url.Values, target any) error {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(c.maxElapsed),
	), ctx)

	operation := func() error {
		u := c.baseURL + path
		if len(params) > 0 {
			u += "?" + params.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(errs.Wrap(err, "failed to build request"))
		}
		err = c.do(req, target)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrPeerNotFound), errors.Is(err, ErrPeerBadRequest):
			return backoff.Permanent(err)
		default:
			return err
		}
	}

	return backoff.Retry(operation, policy)
}

func (c *Client) do(req *http.Request, target any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Mark(err, ErrPeerUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrPeerNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return errs.Mark(errs.New(fmt.Sprintf("status %d", resp.StatusCode)), ErrPeerBadRequest)
	case resp.StatusCode >= 500:
		return errs.Mark(errs.New(fmt.Sprintf("status %d", resp.StatusCode)), ErrPeerUnavailable)
	}

	if target == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Mark(err, ErrPeerUnavailable)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errs.Wrap(err, "failed to decode peer response")
	}
	return nil
}
