package edsm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/platform/obs"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultBaseURL = "https://www.edsm.net"
	DefaultTimeout = 10 * time.Second
	DefaultPace    = 200 * time.Millisecond

	maxBodyBytes = 1 << 20
)

// Client resolves star system positions through the EDSM system API.
//
// Every external call is followed by a fixed pause so that the shared public
// service is not hammered. Calls are serialized, which keeps the pacing intact
// when one Client is shared by concurrent HTTP requests. Failed lookups are
// not retried.
type Client struct {
	session *http.Client
	baseURL string
	pace    time.Duration
	sleep   func(d time.Duration)

	mu sync.Mutex
}

func NewClient(baseURL string, timeout time.Duration, pace time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("EDSM base url is empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if pace < 0 {
		return nil, fmt.Errorf("EDSM pace must not be negative, got %s", pace)
	}

	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		pace:    pace,
		sleep:   time.Sleep,
	}, nil
}

// Resolve fetches the coordinates of one system.
// Every failure is returned as a *domain.ResolutionError.
func (c *Client) Resolve(ctx context.Context, system string) (_ domain.Position, err error) {
	defer obs.Time(ctx, "edsm.Resolve", fmt.Sprintf("system=%q", system))(&err)

	if strings.TrimSpace(system) == "" {
		return domain.Position{}, &domain.ResolutionError{System: system, Err: errors.New("system name must be non-empty")}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The pause holds the lock and ignores ctx so a cancelled caller cannot
	// let the next queued lookup through early.
	pos, err := c.fetchSystem(ctx, system)
	if c.pace > 0 {
		c.sleep(c.pace)
	}
	if err != nil {
		return domain.Position{}, &domain.ResolutionError{System: system, Err: err}
	}

	return pos, nil
}

func (c *Client) fetchSystem(ctx context.Context, system string) (domain.Position, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/api-v1/system", nil)
	if err != nil {
		return domain.Position{}, err
	}

	q := req.URL.Query()
	q.Set("systemName", system)
	q.Set("showCoordinates", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(req)
	if err != nil {
		return domain.Position{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Position{}, fmt.Errorf("read system response: %w", err)
	}

	return parseSystemResponse(body)
}

type systemResponse struct {
	Name   string `json:"name"`
	Coords *struct {
		X *coordValue `json:"x"`
		Y *coordValue `json:"y"`
		Z *coordValue `json:"z"`
	} `json:"coords"`
}

// parseSystemResponse decodes an EDSM system payload.
// EDSM answers unknown systems with an empty array (sometimes an empty object).
func parseSystemResponse(body []byte) (domain.Position, error) {
	trimmed := bytes.TrimSpace(body)
	switch string(trimmed) {
	case "", "[]", "{}", "null":
		return domain.Position{}, domain.ErrSystemNotFound
	}
	if trimmed[0] == '[' {
		return domain.Position{}, errors.New("unexpected array payload")
	}

	var decoded systemResponse
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return domain.Position{}, fmt.Errorf("decode system response: %w", err)
	}

	if decoded.Coords == nil {
		return domain.Position{}, fmt.Errorf("%w: response has no coordinates", domain.ErrSystemNotFound)
	}

	c := decoded.Coords
	if c.X == nil || c.Y == nil || c.Z == nil {
		return domain.Position{}, errors.New("incomplete coordinates in response")
	}

	return domain.Position{X: float64(*c.X), Y: float64(*c.Y), Z: float64(*c.Z)}, nil
}

// coordValue accepts a JSON number or a numeric string.
type coordValue float64

func (v *coordValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return errors.New("coordinate is null")
	}
	if strings.HasPrefix(raw, `"`) {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("coordinate %s: %w", raw, err)
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("coordinate %q is not a number", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("coordinate %q is not finite", raw)
	}

	*v = coordValue(f)
	return nil
}
