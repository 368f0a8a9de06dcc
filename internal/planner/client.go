// Package planner is the HTTP client for the meal planning service.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"fitplanner/internal/config"
	"fitplanner/internal/models"
	"fitplanner/internal/telemetry"
)

const (
	generateMealsPath = "/generate-meals"
	weeklyCheckinPath = "/weekly-checkin"

	RequestIDHeader = "X-Request-ID"
)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client never retries; callers re-trigger failed actions themselves.
type Client struct {
	baseURL string
	client  Doer
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.PlannerBaseURL,
		client: &http.Client{
			Timeout: cfg.PlannerTimeout,
		},
	}
}

// WithDoer returns a copy of c that sends requests through d.
func (c *Client) WithDoer(d Doer) *Client {
	return &Client{baseURL: c.baseURL, client: d}
}

func (c *Client) GeneratePlan(ctx context.Context, profile models.Profile) (models.PlanResponse, error) {
	body, err := c.postJSON(ctx, generateMealsPath, models.NewGenerateMealsRequest(profile))
	if err != nil {
		return models.PlanResponse{}, err
	}

	plan, err := models.DecodePlanResponse(body)
	if err != nil {
		telemetry.ObservePlannerDecodeFailure(generateMealsPath)
		return models.PlanResponse{}, &Error{Kind: KindDecodeFailed, Err: err}
	}
	return plan, nil
}

// CheckinInput carries the weekly check-in values. A nil WaistCm is left out
// of the request.
type CheckinInput struct {
	PreviousWeightKg      float64
	CurrentWeightKg       float64
	PreviousCalorieTarget int
	WaistCm               *float64
}

func (c *Client) WeeklyCheckin(ctx context.Context, in CheckinInput) (models.WeeklyCheckinResponse, error) {
	payload := models.WeeklyCheckinRequest{
		PreviousWeightKg:      in.PreviousWeightKg,
		CurrentWeightKg:       in.CurrentWeightKg,
		PreviousCalorieTarget: in.PreviousCalorieTarget,
		WaistCm:               in.WaistCm,
	}

	body, err := c.postJSON(ctx, weeklyCheckinPath, payload)
	if err != nil {
		return models.WeeklyCheckinResponse{}, err
	}

	resp, err := models.DecodeCheckinResponse(body)
	if err != nil {
		telemetry.ObservePlannerDecodeFailure(weeklyCheckinPath)
		return models.WeeklyCheckinResponse{}, &Error{Kind: KindDecodeFailed, Err: err}
	}
	return resp, nil
}

func (c *Client) endpoint(path string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	if base.Scheme == "" || base.Host == "" {
		return "", &url.Error{Op: "parse", URL: c.baseURL, Err: errMissingHost}
	}
	return base.JoinPath(path).String(), nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	endpoint, err := c.endpoint(path)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Err: err}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindRequestFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		telemetry.ObservePlannerCall(path, KindTransport.String(), time.Since(start))
		slog.Warn("Planner request failed", "path", path, "request_id", requestID, "error", err)
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	if resp == nil {
		telemetry.ObservePlannerCall(path, KindRequestFailed.String(), time.Since(start))
		return nil, &Error{Kind: KindRequestFailed}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		telemetry.ObservePlannerCall(path, KindBadStatus.String(), time.Since(start))
		slog.Warn("Planner returned bad status", "path", path, "request_id", requestID, "status", resp.StatusCode)
		return nil, &Error{Kind: KindBadStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.ObservePlannerCall(path, KindTransport.String(), time.Since(start))
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	telemetry.ObservePlannerCall(path, "ok", time.Since(start))
	slog.Debug("Planner request completed", "path", path, "request_id", requestID, "duration", time.Since(start))
	return body, nil
}
