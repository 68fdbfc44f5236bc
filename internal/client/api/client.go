// Package api is the HTTP client of the records service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// Error is a non-2xx response from the service.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client talks to the records service REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// New creates a Client. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client, tokens TokenStore) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var body dto.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	}
	return apiErr
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(out.AccessToken); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout forgets the stored token.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Me returns the user the stored token belongs to.
func (c *Client) Me(ctx context.Context) (*dto.User, error) {
	var out dto.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DonorQuery filters GET /donors.
type DonorQuery struct {
	Search   string
	Gender   string
	Priority *bool
	Limit    int
	Offset   int
}

func (q DonorQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Gender != "" {
		v.Set("gender", q.Gender)
	}
	if q.Priority != nil {
		v.Set("priority", fmt.Sprint(*q.Priority))
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprint(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", fmt.Sprint(q.Offset))
	}
	return v
}

// SearchDonors lists donors matching q.
func (c *Client) SearchDonors(ctx context.Context, q DonorQuery) ([]dto.Donor, error) {
	var out []dto.Donor
	if err := c.do(ctx, http.MethodGet, "/donors", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DocumentCounts returns document counts for the given donors, in order.
func (c *Client) DocumentCounts(ctx context.Context, donorIDs []string) ([]dto.DocumentCount, error) {
	q := url.Values{"donor_id": donorIDs}
	var out []dto.DocumentCount
	if err := c.do(ctx, http.MethodGet, "/documents/counts", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Documents lists the documents of a donor.
func (c *Client) Documents(ctx context.Context, donorID string) ([]dto.Document, error) {
	var out []dto.Document
	if err := c.do(ctx, http.MethodGet, "/donors/"+url.PathEscape(donorID)+"/documents", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Findings returns the aggregate findings list, optionally by severity.
func (c *Client) Findings(ctx context.Context, severity string) ([]dto.Finding, error) {
	var q url.Values
	if severity != "" {
		q = url.Values{"severity": {severity}}
	}
	var out []dto.Finding
	if err := c.do(ctx, http.MethodGet, "/findings", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DonorFindings returns the findings of one donor.
func (c *Client) DonorFindings(ctx context.Context, donorID string) ([]dto.Finding, error) {
	var out []dto.Finding
	if err := c.do(ctx, http.MethodGet, "/donors/"+url.PathEscape(donorID)+"/findings", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
