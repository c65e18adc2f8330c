package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"timecard-report/internal/models"
	"timecard-report/internal/validation"
)

// EntrySource supplies the raw punch events for a period
type EntrySource interface {
	GetTimeEntries(ctx context.Context, session *models.Session, startDate, endDate string) ([]models.PunchEvent, error)
}

// PontoClient talks to the remote authentication and time-clock services.
// It holds no credentials; every call receives the caller's session.
type PontoClient struct {
	authURL  string
	pontoURL string
	http     *http.Client
}

// NewPontoClient creates a client for the given service base URLs
func NewPontoClient(authURL, pontoURL string, timeout time.Duration) *PontoClient {
	return &PontoClient{
		authURL:  strings.TrimRight(authURL, "/"),
		pontoURL: strings.TrimRight(pontoURL, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for an upstream token and user profile
func (c *PontoClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	payload := map[string]string{"email": email, "password": password}

	var response models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, c.authURL+"/auth/login/", "", payload, &response); err != nil {
		return nil, err
	}
	if !response.Success || response.Token == "" || response.User == nil {
		return &response, rejected(response.Error, "invalid credentials")
	}
	return &response, nil
}

// VerifyToken asks the authentication service whether an upstream token
// is still accepted
func (c *PontoClient) VerifyToken(ctx context.Context, token string) (*models.LoginResponse, error) {
	payload := map[string]string{"token": token}

	var response models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, c.authURL+"/auth/verify/", "", payload, &response); err != nil {
		return nil, err
	}
	if !response.Success {
		return &response, rejected(response.Error, "token rejected")
	}
	return &response, nil
}

// GetTimeEntries fetches the punch events recorded between two dates,
// inclusive. The body is schema-checked before it is decoded.
func (c *PontoClient) GetTimeEntries(ctx context.Context, session *models.Session, startDate, endDate string) ([]models.PunchEvent, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	endpoint := c.pontoURL + "/timecard/entries/?" + query.Encode()

	body, err := c.do(ctx, http.MethodGet, endpoint, upstreamToken(session), nil)
	if err != nil {
		return nil, err
	}

	response, err := validation.ValidateAndParseEntries(body)
	if err != nil {
		log.Printf("[UPSTREAM] WARNING: entries payload rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if !response.Success {
		return nil, rejected(response.Error, "could not load time entries")
	}
	if response.Entries == nil {
		return []models.PunchEvent{}, nil
	}
	return response.Entries, nil
}

// Punch records a clock-in or clock-out for the session's employee
func (c *PontoClient) Punch(ctx context.Context, session *models.Session, submission models.PunchSubmission) (*models.PunchResponse, error) {
	var response models.PunchResponse
	if err := c.doJSON(ctx, http.MethodPost, c.pontoURL+"/timecard/punch/", upstreamToken(session), submission, &response); err != nil {
		return nil, err
	}
	if !response.Success {
		return &response, rejected(response.Error, "punch not recorded")
	}
	return &response, nil
}

func (c *PontoClient) doJSON(ctx context.Context, method, endpoint, token string, payload, out interface{}) error {
	body, err := c.do(ctx, method, endpoint, token, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// do performs the request and returns the raw body. Non-2xx answers are
// still returned when they carry a body, since the upstream reports
// failures as {success:false, error} with 4xx codes.
func (c *PontoClient) do(ctx context.Context, method, endpoint, token string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[UPSTREAM] %s %s failed: %v", method, endpoint, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError || len(bytes.TrimSpace(body)) == 0 {
		log.Printf("[UPSTREAM] %s %s returned status %d", method, endpoint, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}
	return body, nil
}

func upstreamToken(session *models.Session) string {
	if session == nil {
		return ""
	}
	return session.UpstreamToken
}

func rejected(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return fmt.Errorf("%w: %s", ErrUpstreamRejected, message)
}
