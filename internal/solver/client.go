package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// SuggestRequest carries one plan week's nutrition targets to the solver.
type SuggestRequest struct {
	WeekNumber       int     `json:"weekNumber"`
	TargetIntakeKcal float64 `json:"targetIntakeKcal"`
	TargetWeightKg   float64 `json:"targetWeightKg"`
	WeeklyChangeKg   float64 `json:"weeklyChangeKg"`
}

// MenuItem is one suggested meal component.
type MenuItem struct {
	Meal string  `json:"meal"`
	Name string  `json:"name"`
	Kcal float64 `json:"kcal"`
}

// SuggestResponse holds the solver's menu for the requested targets.
type SuggestResponse struct {
	Items     []MenuItem `json:"items"`
	TotalKcal float64    `json:"totalKcal"`
	LatencyMs int64      `json:"-"`
}

// Client provides access to the external menu solver.
type Client interface {
	// Suggest asks the solver for a menu matching the week's targets.
	Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error)

	// Available checks whether the solver server is reachable.
	Available(ctx context.Context) bool
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client that talks to the configured solver endpoint.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, req)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{LatencyMs: latency, Success: true})
			resp.LatencyMs = latency
			return resp, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout.
		if ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	err := classify(ctx, lastErr)
	c.observer.OnCallComplete(CallEvent{
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c *httpClient) doRequest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/v1/menu"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solver returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp SuggestResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/v1/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	if isConnectionError(err) {
		return ErrSolverUnavailable
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrSolverUnavailable):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
