// Package wahoo talks to the Wahoo cloud API: OAuth2 token handling, plan
// file upload, and workout scheduling.
package wahoo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/run-planner/run-planner-app/internal/planner"
)

// DefaultBaseURL is the production Wahoo API host.
const DefaultBaseURL = "https://api.wahooligan.com"

// DefaultScopes is everything the run planner asks for at authorization.
const DefaultScopes = "power_zones_read power_zones_write workouts_read workouts_write plans_read plans_write routes_read routes_write user_read"

const (
	planFileName     = "kickr_run.json"
	workoutTypeIDRun = 1
	requestTimeout   = 30 * time.Second
)

// Config carries the OAuth application credentials. BaseURL and Scopes fall
// back to the defaults when empty.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BaseURL      string
	Scopes       string
}

// Client is the Wahoo API client. One request per call, no retries; failure
// policy belongs to the caller.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
	newToken   func() string
}

// NewClient creates a Wahoo client.
func NewClient(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		panic("wahoo.Client: logger cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Scopes == "" {
		cfg.Scopes = DefaultScopes
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
		now:        time.Now,
		newToken:   func() string { return uuid.NewString() },
	}
}

// AuthURL returns the browser URL that starts the OAuth authorization flow.
func (c *Client) AuthURL() string {
	params := url.Values{
		"client_id":     {c.cfg.ClientID},
		"redirect_uri":  {c.cfg.RedirectURI},
		"scope":         {c.cfg.Scopes},
		"response_type": {"code"},
	}
	return c.cfg.BaseURL + "/oauth/authorize?" + params.Encode()
}

// ExchangeCode trades an authorization code for a token pair.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Token, error) {
	return c.requestToken(ctx, url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {c.cfg.RedirectURI},
	})
}

// Refresh trades a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Token, error) {
	return c.requestToken(ctx, url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	})
}

func (c *Client) requestToken(ctx context.Context, form url.Values) (Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/oauth/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Token{}, c.apiError("token request", resp)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return Token{}, fmt.Errorf("%w: decode token response: %v", ErrExternalService, err)
	}
	token := Token{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}
	if tr.ExpiresIn > 0 {
		token.ExpiresAt = c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	c.logger.Printf("Wahoo: obtained access token (expires %v)", token.ExpiresAt)
	return token, nil
}

// CheckToken reports whether the access token still works, by fetching the
// current user.
func (c *Client) CheckToken(ctx context.Context, accessToken string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/v1/user", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK, nil
}

// UploadPlan uploads the serialized plan document as a base64 plan file and
// returns the new plan's id.
func (c *Client) UploadPlan(ctx context.Context, accessToken string, doc planner.PlanDocument) (int, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshal plan document: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	form := url.Values{
		"plan[file]":                {"data:application/json;base64," + encoded},
		"plan[filename]":            {planFileName},
		"plan[external_id]":         {fmt.Sprintf("RUN_%d", c.now().Unix())},
		"plan[provider_updated_at]": {c.now().UTC().Format(time.RFC3339)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/plans",
		strings.NewReader(form.Encode()))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, c.apiError("plan upload", resp)
	}

	var pr planResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, fmt.Errorf("%w: decode plan response: %v", ErrExternalService, err)
	}
	c.logger.Printf("Wahoo: uploaded plan %q as id %d", doc.Header.Name, pr.ID)
	return pr.ID, nil
}

// scheduleRequest is the /v1/workouts request body.
type scheduleRequest struct {
	Workout scheduleWorkout `json:"workout"`
}

type scheduleWorkout struct {
	Name          string `json:"name"`
	Starts        string `json:"starts"`
	PlanID        int    `json:"plan_id"`
	WorkoutTypeID int    `json:"workout_type_id"`
	WorkoutToken  string `json:"workout_token"`
	Minutes       int    `json:"minutes"`
}

// ScheduleWorkout schedules the uploaded plan as a workout starting now and
// returns the workout id. The workout token is a fresh idempotency UUID.
func (c *Client) ScheduleWorkout(ctx context.Context, accessToken string, planID int, name string, totalDurationSeconds int) (int, error) {
	body, err := json.Marshal(scheduleRequest{Workout: scheduleWorkout{
		Name:          name,
		Starts:        c.now().UTC().Format(time.RFC3339),
		PlanID:        planID,
		WorkoutTypeID: workoutTypeIDRun,
		WorkoutToken:  c.newToken(),
		Minutes:       totalDurationSeconds / 60,
	}})
	if err != nil {
		return 0, fmt.Errorf("marshal workout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/workouts",
		strings.NewReader(string(body)))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, c.apiError("workout schedule", resp)
	}

	var wr workoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return 0, fmt.Errorf("%w: decode workout response: %v", ErrExternalService, err)
	}
	c.logger.Printf("Wahoo: scheduled workout %q as id %d", name, wr.ID)
	return wr.ID, nil
}

// apiError wraps a non-success response without interpreting it.
func (c *Client) apiError(what string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	c.logger.Printf("Wahoo: %s failed: %s %s", what, resp.Status, strings.TrimSpace(string(body)))
	return fmt.Errorf("%w: %s: status %d: %s", ErrExternalService, what, resp.StatusCode, strings.TrimSpace(string(body)))
}
